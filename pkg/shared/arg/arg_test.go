package arg

import (
	"reflect"
	"testing"
)

func TestHandleContent(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		expect string
	}{
		{
			name:   "title only",
			args:   []string{"title"},
			expect: "",
		},
		{
			name:   "title and tags",
			args:   []string{"title", "tag1, tag2"},
			expect: "",
		},
		{
			name:   "title tags content",
			args:   []string{"title", "tag1", "content", "body"},
			expect: "content body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HandleContent(tc.args)
			if got != tc.expect {
				t.Fatalf("HandleContent(%v) = %q, want %q", tc.args, got, tc.expect)
			}
		})
	}
}

func TestHandleTags(t *testing.T) {
	if got := HandleTags([]string{"title"}); got != nil {
		t.Fatalf("HandleTags without tags = %v, want nil", got)
	}

	got := HandleTags([]string{"title", " go , cli ,"})
	want := []string{"go", "cli"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("HandleTags = %v, want %v", got, want)
	}
}

func TestHandleTitle(t *testing.T) {
	if _, err := HandleTitle(nil); err != ErrNoTitle {
		t.Fatalf("HandleTitle(nil) error = %v, want ErrNoTitle", err)
	}
	if _, err := HandleTitle([]string{"  "}); err != ErrNoTitle {
		t.Fatalf("HandleTitle(blank) error = %v, want ErrNoTitle", err)
	}

	title, err := HandleTitle([]string{" Go  ", "tags"})
	if err != nil || title != "Go" {
		t.Fatalf("HandleTitle = %q, %v", title, err)
	}
}
