// Package feed implements the HTTP client for the Home Front Command
// active-alerts JSON feed.
//
// It handles the feed's quirks: a UTF-8 byte order mark on the body, an
// empty body when no alerts are active anywhere, and best-effort alert
// timestamps that fall back to the current time.
package feed
