package models

// Revision is the current publication record of a commune as served by the
// revision provider. All identifying fields are optional, the eligibility
// resolver inspects them in order.
type Revision struct {
	ID      string           `json:"id,omitempty"`
	Context *RevisionContext `json:"context,omitempty"`
	Client  *RevisionClient  `json:"client,omitempty"`
}

// RevisionContext carries the free-form extras attached at publication time
type RevisionContext struct {
	Extras *RevisionExtras `json:"extras,omitempty"`
}

// RevisionExtras identifies how the revision was produced
type RevisionExtras struct {
	// BalID is set when the commune manages its addresses on the editing platform
	BalID string `json:"balId,omitempty"`
	// SourceID is set when the revision was produced by a harvester
	SourceID string `json:"sourceId,omitempty"`
}

// RevisionClient identifies the publishing client
type RevisionClient struct {
	ID string `json:"id,omitempty"`
}

// BalID returns the editing-platform identifier, empty when absent
func (r *Revision) BalID() string {
	if r == nil || r.Context == nil || r.Context.Extras == nil {
		return ""
	}
	return r.Context.Extras.BalID
}

// HarvesterSourceID returns the harvester identifier, empty when absent
func (r *Revision) HarvesterSourceID() string {
	if r == nil || r.Context == nil || r.Context.Extras == nil {
		return ""
	}
	return r.Context.Extras.SourceID
}

// PublicationClientID returns the publishing client identifier, empty when absent
func (r *Revision) PublicationClientID() string {
	if r == nil || r.Client == nil {
		return ""
	}
	return r.Client.ID
}
