// Package prompt asks the user questions. On a terminal it uses pterm's
// interactive widgets; otherwise it falls back to numbered, line-based
// prompts read from any io.Reader, which is also how tests script answers.
package prompt
