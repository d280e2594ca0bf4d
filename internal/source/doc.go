// Package source adapts each configuration input (structured config files,
// dotenv files, process environment variables, secrets providers) into the
// nested mapping the merge engine consumes.
//
// Every source honours the same output contract: a nested map of scalars,
// sequences, and further maps. A missing optional input contributes an empty
// map; a present-but-unparsable file is a ParseError.
package source
