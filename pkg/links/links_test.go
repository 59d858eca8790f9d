package links

import (
	"strings"
	"testing"

	"github.com/doublelucky/compass/pkg/common"
)

func TestForNode_CareerModes(t *testing.T) {
	l := ForNode("OpenAI, Inc.", common.ModeDiscovery)

	if want := "https://www.google.com/search?q=OpenAI%2C+Inc."; l.Web != want {
		t.Errorf("Web = %q, want %q", l.Web, want)
	}
	if !strings.Contains(l.News, "tbm=nws") || !strings.Contains(l.News, "OpenAI%2C+Inc.+news") {
		t.Errorf("News = %q", l.News)
	}
	if want := "https://www.linkedin.com/jobs/search/?keywords=OpenAI%2C+Inc."; l.Jobs != want {
		t.Errorf("Jobs = %q, want %q", l.Jobs, want)
	}
	if l.Help != "" {
		t.Errorf("Help = %q, want empty outside care mode", l.Help)
	}
}

func TestForNode_CareMode(t *testing.T) {
	l := ForNode("Respite Care", common.ModeCareJourney)

	if l.Jobs != "" {
		t.Errorf("Jobs = %q, want empty in care mode", l.Jobs)
	}
	if want := "https://www.google.com/search?q=Respite+Care+help+and+resources"; l.Help != want {
		t.Errorf("Help = %q, want %q", l.Help, want)
	}
}

func TestSearchURLsEscapeReservedCharacters(t *testing.T) {
	got := WebSearch("AT&T / R&D")
	if strings.ContainsAny(got[len("https://www.google.com/search?q="):], "&/ ") {
		t.Errorf("WebSearch() = %q, reserved characters not escaped", got)
	}
}
