// Package schema provides the in-memory object model for API schema
// documents (JSON-Schema-like property trees written as YAML or JSON).
//
// Documents decode through yaml.v3 node trees into an ordered Object
// model: mapping keys keep their declaration order, which later drives
// traversal and finding order. The model is deliberately loose - a
// malformed node (say, a "properties" key holding a list) is
// representable and is reported by the checker during traversal rather
// than rejected at parse time. Only documents that are not mappings at
// the root, or not YAML/JSON at all, fail to parse.
//
// Paths into a document are RFC 6901 JSON pointers, built with
// AppendToken/EscapeToken.
package schema
