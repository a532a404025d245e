// Package release fetches a host application release published as a GitHub
// branch archive and moves it into the site directory.
package release
