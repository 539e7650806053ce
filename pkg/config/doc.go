/*
Package config manages configuration parsing and validation for drivername.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+
	                   |
	          .env + environment
	             overrides

🎯 Purpose:
- Loads the optional .drivername config file
- Applies DRIVERNAME_FORMAT and DRIVERNAME_CONCURRENCY overrides
- Fills defaults and validates the format template

🔄 Flow:
1. Discover or Load picks a parser by file extension
2. The parser decodes the file, rejecting unknown fields
3. ApplyEnv overrides values from the environment
4. Validate fills defaults and parses the template

Command line flags are applied by the caller after loading and win over
everything else.
*/
package config
