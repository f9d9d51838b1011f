// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads rosterdesk's configuration.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults ([Default]).
//  2. A YAML file named by the --config flag or ROSTERDESK_CONFIG.
//     The file is optional; without one the defaults stand.
//  3. ROSTERDESK_* environment variables. Variables may also come
//     from .env and .env.local in the working directory; variables
//     already set in the process environment take precedence over
//     those files.
//
// The result is validated before it is returned, so callers never see
// a half-valid configuration.
//
// Example file:
//
//	api:
//	  base_url: https://hr.example.com/api/v1/employee
//	  timeout: 10s
//	  retry_attempts: 3
//	ui:
//	  notice_duration: 4s
//	log:
//	  level: debug
package config
