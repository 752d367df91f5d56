package stream

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/famomatic/yttui/internal/innertube"
)

// Summary is printed to the terminal before the player starts.
type Summary struct {
	Title         string
	Description   string
	LengthSeconds int64
	FamilySafe    bool
	Unlisted      bool
	Views         int64
	Category      string
	Uploader      string
	Uploaded      string
}

func NewSummary(resp *innertube.PlayerResponse) Summary {
	m := resp.Microformat.PlayerMicroformatRenderer
	s := Summary{
		Title:       m.Title.SimpleText,
		Description: m.Description.SimpleText,
		FamilySafe:  m.IsFamilySafe,
		Unlisted:    m.IsUnlisted,
		Category:    m.Category,
		Uploader:    m.OwnerChannelName,
		Uploaded:    m.UploadDate,
	}
	if s.Title == "" {
		s.Title = resp.VideoDetails.Title
	}
	if s.Uploader == "" {
		s.Uploader = resp.VideoDetails.Author
	}
	length := m.LengthSeconds
	if length == "" {
		length = resp.VideoDetails.LengthSeconds
	}
	s.LengthSeconds, _ = strconv.ParseInt(length, 10, 64)
	views := m.ViewCount
	if views == "" {
		views = resp.VideoDetails.ViewCount
	}
	s.Views, _ = strconv.ParseInt(views, 10, 64)
	return s
}

var printer = message.NewPrinter(language.English)

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", s.Description)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Length: %s\n", HumanLength(s.LengthSeconds))
	b.WriteString(flag(s.FamilySafe, "Family friendly") + "\n")
	b.WriteString(flag(s.Unlisted, "Unlisted") + "\n")
	b.WriteString(printer.Sprintf("Views: %d\n", s.Views))
	fmt.Fprintf(&b, "Category: %s\n", s.Category)
	fmt.Fprintf(&b, "Uploader: %s\n", s.Uploader)
	fmt.Fprintf(&b, "Uploaded: %s\n", s.Uploaded)
	return b.String()
}

func flag(set bool, label string) string {
	if set {
		return label
	}
	return "Not " + strings.ToLower(label[:1]) + label[1:]
}

// HumanLength renders seconds in the largest whole unit.
func HumanLength(seconds int64) string {
	const (
		minute = 60
		hour   = 60 * minute
		day    = 24 * hour
		year   = 365 * day
		month  = year / 12
	)
	units := []struct {
		size int64
		name string
	}{
		{year, "year"},
		{month, "month"},
		{day, "day"},
		{hour, "hour"},
		{minute, "minute"},
	}
	for _, u := range units {
		if seconds >= u.size {
			return plural(seconds/u.size, u.name)
		}
	}
	return plural(seconds, "second")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return printer.Sprintf("%d %ss", n, unit)
}
