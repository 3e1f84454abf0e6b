// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the rdv supervisor.
//
// The supervisor's constants (tool binary candidates, manifest path,
// reserved attestation file name, probe file name, builder id prefix,
// hashing parallelism, log level) have built-in defaults matching the
// tool container image layout. An image may override them with a
// single YAML file named by the RDV_CONFIG environment variable.
// There is no automatic discovery: when RDV_CONFIG is unset the
// defaults apply, and when it is set the file must load and validate.
//
// Unknown keys are rejected so a typo cannot silently leave a default
// in place. ${VAR} and ${VAR:-default} references in path values are
// expanded against the environment.
package config
