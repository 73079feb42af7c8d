package domain

// UpgradeRequest is a manual payment confirmation sent for review.
type UpgradeRequest struct {
	TransactionID string
	Screenshot    *Attachment
}

// Attachment is an uploaded file held in memory.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the attachment length in bytes.
func (a *Attachment) Size() int64 {
	if a == nil {
		return 0
	}
	return int64(len(a.Data))
}
