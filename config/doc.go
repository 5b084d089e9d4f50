/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the YAML configuration of entityquery.
//
// Example configuration:
//
//	store:
//	  type: cassandra
//	  cassandra:
//	    hosts: ["127.0.0.1"]
//	    keyspace: ratings
//	    consistency: LOCAL_QUORUM
//	    timeout: 5s
//	    password: ${CASSANDRA_PASSWORD}
//	  dynamodb:
//	    region: us-east-1
//	    table: ratings
//	pagination:
//	  default_page_size: 50
//	  max_page_size: 1000
//	log:
//	  level: debug
//
// References of the form ${VAR} are expanded from the environment, after variables
// from an optional .env file have been loaded with godotenv.
package config
