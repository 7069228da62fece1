package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/grailbio/base/log"
)

func cmdExport(argv []string) error {
	if len(argv) != 2 {
		return fmt.Errorf("export takes <path> <s3://bucket/key>, got %v", argv)
	}
	return runExport(argv[0], argv[1])
}

// runExport uploads the file at path to an s3://bucket/key destination,
// using the SDK's managed uploader so a multi-gigabyte persisted archive
// streams up in parts rather than buffering whole in memory.
func runExport(path, dest string) error {
	bucket, key, err := parseS3URL(dest)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sess, err := session.NewSession()
	if err != nil {
		return err
	}
	uploader := s3manager.NewUploader(sess)
	out, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return err
	}
	log.Info.Printf("meosctl export: uploaded %s to %s", path, out.Location)
	return nil
}

func parseS3URL(s string) (bucket, key string, err error) {
	const prefix = "s3://"
	if !strings.HasPrefix(s, prefix) {
		return "", "", fmt.Errorf("expected s3://bucket/key, got %q", s)
	}
	rest := s[len(prefix):]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return "", "", fmt.Errorf("expected s3://bucket/key, got %q", s)
	}
	return rest[:slash], rest[slash+1:], nil
}
