// Package config loads and validates the settracker YAML configuration.
//
// Configuration is read from a single YAML file. Values in the format
// ${VAR_NAME} are expanded from the environment before parsing, so secrets
// like the JWT signing key can be injected without writing them to disk:
//
//	server:
//	  http_addr: ":8080"
//	database:
//	  uri: "${MONGO_URI}"
//	  name: "set-tracker-db"
//	auth:
//	  jwt_secret: "${JWT_SECRET}"
//	logging:
//	  level: "info"
//	  format: "json"
//
// Load fails fast: a missing or too-short jwt_secret is a startup error,
// not a condition the server ever tries to recover from at request time.
package config
