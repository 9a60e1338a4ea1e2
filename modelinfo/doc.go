// Package modelinfo parses the model-info file (SALT2.INFO) of a versioned
// SED model directory.
//
// The file is a free-form stream of "KEY: values" tokens; unknown tokens are
// ignored so that newer model directories stay readable. Parse starts from
// Default() and overrides only the keys that appear. Validate rejects
// enumerated options outside their range. YAML renders the effective
// configuration for logs and the saltmag summary command.
package modelinfo
