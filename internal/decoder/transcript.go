package decoder

import (
	"github.com/famomatic/yttui/internal/types"
)

type transcriptResponse struct {
	Actions []struct {
		UpdateEngagementPanelAction *struct {
			Content struct {
				TranscriptRenderer *struct {
					Content struct {
						TranscriptSearchPanelRenderer *transcriptPanel `json:"transcriptSearchPanelRenderer"`
					} `json:"content"`
				} `json:"transcriptRenderer"`
			} `json:"content"`
		} `json:"updateEngagementPanelAction"`
	} `json:"actions"`
}

type transcriptPanel struct {
	Body struct {
		TranscriptSegmentListRenderer *struct {
			InitialSegments []renderer `json:"initialSegments"`
		} `json:"transcriptSegmentListRenderer"`
	} `json:"body"`
	Footer struct {
		TranscriptFooterRenderer *struct {
			LanguageMenu *struct {
				SortFilterSubMenuRenderer struct {
					SubMenuItems []struct {
						Title        string `json:"title"`
						Selected     bool   `json:"selected"`
						Continuation struct {
							ReloadContinuationData struct {
								Continuation string `json:"continuation"`
							} `json:"reloadContinuationData"`
						} `json:"continuation"`
					} `json:"subMenuItems"`
				} `json:"sortFilterSubMenuRenderer"`
			} `json:"languageMenu"`
		} `json:"transcriptFooterRenderer"`
	} `json:"footer"`
}

// Transcript decodes a transcript. Other languages are listed first; the
// transcript never has a continuation.
func Transcript(raw []byte) (*Result, error) {
	var resp transcriptResponse
	if err := decodeJSON(ShapeTranscript, raw, &resp); err != nil {
		return nil, err
	}

	b := newBuilder(ShapeTranscript)
	found := false
	for _, a := range resp.Actions {
		u := a.UpdateEngagementPanelAction
		if u == nil || u.Content.TranscriptRenderer == nil || u.Content.TranscriptRenderer.Content.TranscriptSearchPanelRenderer == nil {
			continue
		}
		found = true
		panel := u.Content.TranscriptRenderer.Content.TranscriptSearchPanelRenderer

		if f := panel.Footer.TranscriptFooterRenderer; f != nil && f.LanguageMenu != nil {
			b.push(types.Item{Title: underlined("Other languages")})
			for _, l := range f.LanguageMenu.SortFilterSubMenuRenderer.SubMenuItems {
				b.push(types.Item{
					Title:  types.Block{{types.Span{Text: l.Title, Underline: l.Selected}}},
					Detail: types.Block{{types.Plain("Transcript in "), types.Bold(l.Title)}},
					Node:   types.TranscriptNode(l.Continuation.ReloadContinuationData.Continuation),
				})
			}
			b.push(blank())
		}

		if panel.Body.TranscriptSegmentListRenderer == nil {
			return nil, shapeErr(ShapeTranscript, "no transcriptSegmentListRenderer")
		}
		if err := b.addAll(panel.Body.TranscriptSegmentListRenderer.InitialSegments); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, shapeErr(ShapeTranscript, "no transcriptSearchPanelRenderer")
	}
	res := b.result()
	res.Continuation = nil
	return res, nil
}
