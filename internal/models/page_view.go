package models

// VoterView is a roster row annotated with the viewer's call status.
type VoterView struct {
	VoterRecord
	Called bool `json:"called"`
}

// PageView is one rendered page of a result set.
type PageView struct {
	Criteria   FilterCriteria `json:"criteria"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
	Voters     []VoterView    `json:"voters"`
}

// NewPageView renders the paginator's current page, flagging called voters.
func NewPageView(criteria FilterCriteria, p *Paginator[VoterRecord], called func(id string) bool) PageView {
	items := p.Items()
	voters := make([]VoterView, len(items))
	for i, v := range items {
		voters[i] = VoterView{VoterRecord: v, Called: called != nil && called(v.ID)}
	}
	start, end := p.Bounds()
	return PageView{
		Criteria:   criteria,
		Page:       p.Current(),
		TotalPages: p.TotalPages(),
		PageSize:   p.PageSize(),
		Total:      p.Len(),
		Start:      start,
		End:        end,
		Voters:     voters,
	}
}
