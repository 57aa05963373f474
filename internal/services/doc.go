// Package services implements the stateless command handlers ("collaborators") the router calls for everything but list commands.
//
// # Collaborator Interface
//
// Every handler implements [Collaborator]: it receives the inbound message and the words after the command,
// and returns zero or more reply chunks. Collaborators never return errors.
// Failures are logged and turned into a fallback reply.
//
// # Implementations
//
//   - [ImageSearch] : "images", Google Custom Search, up to five https .jpg results as a card carousel
//   - [Dictionary] : "define", scrapes definition lists from a dictionary page with golang.org/x/net/html
//   - [Chooser] : "choose", picks one of a comma-separated list
//   - [ASCII] : "ascii", renders FIGlet text
//   - [Birthday], [Exodia], [Markdown] : card and formatting commands
//
// # HTTP
//
// Collaborators that call out share [NewHTTPClient], which sets a request timeout.
// Image search is also rate limited with golang.org/x/time/rate.
package services
