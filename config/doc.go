// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or the file named by RAILRANK_CONFIG)
// and validated using struct tags. A .env file in the working directory is
// loaded first so environment overrides can live next to the binary.
package config
