package compiler

import (
	"github.com/specialistvlad/jessc/internal/registry"
	"github.com/specialistvlad/jessc/modules/env"
	"github.com/specialistvlad/jessc/modules/require"
)

// coreModules is the definitive list of directive modules compiled into jessc.
var coreModules = []registry.Module{
	&require.Module{},
	&env.Module{},
}

// DefaultRegistry returns a registry holding every core directive.
func DefaultRegistry() *registry.Registry {
	return registry.New(coreModules...)
}
