// Package bbref knows the baseball-reference site: page URLs, the player id
// heuristic, the layout of the game previews page and a Client that ties
// fetching to split extraction.
//
// The Client never talks to the network itself; it goes through a Pages
// implementation (normally *fetch.Fetcher), so every request shares the same
// throttle.
package bbref
