// Package config loads the optional jessc.hcl project file.
//
// Example:
//
//	search_path    = ["lib", "${env.HOME}/.jess/lib"]
//	extension      = ".jess"
//	output         = "dist/app.js"
//	cache_file     = ".jessc-cache.hcl"
//	bundle_runtime = true
//
//	watch {
//	  interval         = "500ms"
//	  reload_port      = 35729
//	  healthcheck_port = 8081
//	}
//
// Expressions may reference environment variables through the `env` object.
// Relative paths are resolved against the directory holding the file.
package config
