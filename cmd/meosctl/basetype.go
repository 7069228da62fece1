package main

import (
	"fmt"
	"strings"

	"github.com/mobilitydb/meos-go/basetype"
)

// baseTypeByName resolves the handful of builtin base type names meosctl
// accepts on the command line; a host-registered type beyond the builtins
// needs the embedder's own tool, since a registry beyond Default() is a
// host concern.
func baseTypeByName(name string) (basetype.Type, error) {
	switch strings.ToLower(name) {
	case "bool":
		return basetype.Bool, nil
	case "int4", "int":
		return basetype.Int4, nil
	case "float8", "float":
		return basetype.Float8, nil
	case "text":
		return basetype.Text, nil
	case "geometry2d", "geom2d":
		return basetype.Geom2D, nil
	case "geometry3d", "geom3d":
		return basetype.Geom3D, nil
	case "geography2d", "geog2d":
		return basetype.Geog2D, nil
	case "geography3d", "geog3d":
		return basetype.Geog3D, nil
	default:
		return 0, fmt.Errorf("unknown base type %q", name)
	}
}
