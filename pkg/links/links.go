// Package links builds outbound research URLs for graph nodes. Pure
// string construction, no network access.
package links

import (
	"net/url"

	"github.com/doublelucky/compass/pkg/common"
)

// NodeLinks are the outbound research URLs offered next to a selected
// node.
type NodeLinks struct {
	Web  string `json:"web"`
	News string `json:"news"`
	Jobs string `json:"jobs,omitempty"`
	Help string `json:"help,omitempty"`
}

// ForNode returns the outbound links for a node name under the given
// query mode. Career modes get a job search, the care journey mode gets
// a help-and-resources search instead.
func ForNode(name string, mode common.QueryMode) NodeLinks {
	l := NodeLinks{
		Web:  WebSearch(name),
		News: NewsSearch(name),
	}
	if mode == common.ModeCareJourney {
		l.Help = HelpSearch(name)
	} else {
		l.Jobs = JobSearch(name)
	}
	return l
}

// WebSearch returns a general web search URL for the name.
func WebSearch(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name)
}

// NewsSearch returns a news-tab search URL for the name.
func NewsSearch(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name+" news") + "&tbm=nws"
}

// JobSearch returns a LinkedIn job search URL for the name.
func JobSearch(name string) string {
	return "https://www.linkedin.com/jobs/search/?keywords=" + url.QueryEscape(name)
}

// HelpSearch returns a support-resource search URL for the name.
func HelpSearch(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name+" help and resources")
}
