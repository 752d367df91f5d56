package selector

import (
	"reflect"
	"testing"
)

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		input    string
		expected Criterion
		wantErr  bool
	}{
		{input: "bitrate:lowest", expected: Criterion{Field: FieldBitrate, Rank: Rank{Direction: Lowest}}},
		{input: "bitrate:highest", expected: Criterion{Field: FieldBitrate, Rank: Rank{Direction: Highest}}},
		{input: "quality:closest:720", expected: Criterion{Field: FieldQuality, Rank: Rank{Direction: ClosestTo, Target: 720}}},
		{input: " height:best ", expected: Criterion{Field: FieldQuality, Rank: Rank{Direction: Highest}}},
		{input: "format:webm", expected: Criterion{Field: FieldFormat, Value: "webm"}},
		{input: "language:English (United States)", expected: Criterion{Field: FieldLanguage, Value: "English (United States)"}},
		{input: "quality:closest", wantErr: true},
		{input: "quality:closest:abc", wantErr: true},
		{input: "bitrate:median", wantErr: true},
		{input: "fps:60", wantErr: true},
		{input: "bitrate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCriterion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCriterion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("ParseCriterion() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParsePolicyRejectsWrongPartition(t *testing.T) {
	if _, err := ParsePolicy(Audio, []string{"quality:highest"}); err == nil {
		t.Fatalf("ParsePolicy(audio, quality) error = nil, want error")
	}
	if _, err := ParsePolicy(Video, []string{"language:English"}); err == nil {
		t.Fatalf("ParsePolicy(video, language) error = nil, want error")
	}
}

func TestPolicyStringsRoundTrip(t *testing.T) {
	in := []string{"quality:closest:720", "format:mp4", "bitrate:lowest"}
	p, err := ParsePolicy(Video, in)
	if err != nil {
		t.Fatalf("ParsePolicy() error = %v", err)
	}
	if got := p.Strings(); !reflect.DeepEqual(got, in) {
		t.Fatalf("Strings() = %v, want %v", got, in)
	}
}
