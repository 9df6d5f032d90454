// Package config loads overload CLI settings with koanf.
//
// Settings come from an optional yaml or json file, overridden by
// environment variables prefixed with OVERLOAD_:
//
//	log:
//	  level: info        # OVERLOAD_LOG__LEVEL
//	  format: console    # console | json
//	resolve:
//	  check_variadic: false
//	metrics:
//	  enabled: false
//	  namespace: overload
//	  addr: ":9090"
//	cli:
//	  color: auto        # auto | on | off
//	  parallelism: 8
package config
