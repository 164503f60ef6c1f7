package client

import "testing"

func TestHighlight(t *testing.T) {
	cases := []struct {
		name string
		text string
		term string
		want string
	}{
		{
			name: "simple match",
			text: "Go is great",
			term: "go",
			want: "<mark>Go</mark> is great",
		},
		{
			name: "case insensitive keeps original casing",
			text: "GoLang and golang and GOLANG",
			term: "golang",
			want: "<mark>GoLang</mark> and <mark>golang</mark> and <mark>GOLANG</mark>",
		},
		{
			name: "empty term unchanged",
			text: "nothing to see",
			term: "",
			want: "nothing to see",
		},
		{
			name: "no match unchanged",
			text: "nothing to see",
			term: "xyz",
			want: "nothing to see",
		},
		{
			name: "empty text",
			text: "",
			term: "go",
			want: "",
		},
		{
			name: "adjacent matches",
			text: "aaa",
			term: "a",
			want: "<mark>a</mark><mark>a</mark><mark>a</mark>",
		},
		{
			name: "arabic text",
			text: "أخبار المدينة اليوم",
			term: "مدينة",
			want: "أخبار ال<mark>مدينة</mark> اليوم",
		},
		{
			name: "match after rune whose lowercase form is longer",
			text: "Ⱥbc",
			term: "c",
			want: "Ⱥb<mark>c</mark>",
		},
		{
			name: "case pair with different byte lengths",
			text: "Ⱥbc",
			term: "ⱥ",
			want: "<mark>Ⱥ</mark>bc",
		},
		{
			name: "kelvin sign folds to ascii k",
			text: "300K outside",
			term: "k",
			want: "300<mark>K</mark> outside",
		},
		{
			name: "term longer than text",
			text: "go",
			term: "golang",
			want: "go",
		},
	}

	for _, tc := range cases {
		got := Highlight(tc.text, tc.term)
		if got != tc.want {
			t.Errorf("%s: Highlight(%q, %q) = %q, want %q", tc.name, tc.text, tc.term, got, tc.want)
		}
	}
}
