/*
Package keys encodes the composite partition and sort keys that let several
entity types share one DynamoDB table.

A key is a type tag followed by zero or more components joined by "#":

	keys.Encode(keys.Bot)                               // "Bot"                 partition of all bots
	keys.Encode(keys.Bot, "ABC123")                     // "Bot#abc123"          one bot
	keys.Encode(keys.TestExecution, "abc123", "run-7")  // "TestExecution#abc123#run-7"
	keys.EncodePrefix(keys.TestExecution, "abc123")     // "TestExecution#abc123#"

String components are lower-cased and percent-escaped, so a component can
never introduce a delimiter and keys compare case-insensitively. Decode
reverses the escaping and returns the tag followed by the components.
*/
package keys
