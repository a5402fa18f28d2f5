// ABOUTME: Tests for the static page copy source
// ABOUTME: Ensures defaults exist for every page the handlers render

package pagecopy

import (
	"context"
	"testing"
)

func TestStatic_KnownPages(t *testing.T) {
	src := Static{}
	ctx := context.Background()

	pages := []string{
		PageIndex, PageAuth, PageAuthSuccess, PageLogout,
		PageSubmitLeave, PageSubmitSuccess, PageEmptyDataError,
	}

	for _, page := range pages {
		if got := src.Get(ctx, page, FieldTitle); got == "" {
			t.Errorf("Get(%q, title) = empty, every page needs a default title", page)
		}
	}
}

func TestStatic_UnknownPage(t *testing.T) {
	src := Static{}

	if got := src.Get(context.Background(), "no_such_page", FieldTitle); got != "" {
		t.Errorf("Get(unknown page) = %q, want empty", got)
	}
}
