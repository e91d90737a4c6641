package issue

import (
	"fmt"
	"time"

	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/biztime"
)

// Media is photographic evidence attached to exactly one issue.
type Media struct {
	id        uint
	issueID   uint
	mediaType vo.MediaType
	url       string
	objectKey string
	createdAt time.Time
}

func NewMedia(issueID uint, mediaType vo.MediaType, url, objectKey string) (*Media, error) {
	if !mediaType.IsValid() {
		return nil, fmt.Errorf("invalid media type")
	}
	if len(url) == 0 {
		return nil, fmt.Errorf("media URL is required")
	}

	return &Media{
		issueID:   issueID,
		mediaType: mediaType,
		url:       url,
		objectKey: objectKey,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructMedia(id, issueID uint, mediaType vo.MediaType, url, objectKey string, createdAt time.Time) (*Media, error) {
	if id == 0 {
		return nil, fmt.Errorf("media ID cannot be zero")
	}
	if !mediaType.IsValid() {
		return nil, fmt.Errorf("invalid media type")
	}

	return &Media{
		id:        id,
		issueID:   issueID,
		mediaType: mediaType,
		url:       url,
		objectKey: objectKey,
		createdAt: createdAt,
	}, nil
}

func (m *Media) ID() uint             { return m.id }
func (m *Media) IssueID() uint        { return m.issueID }
func (m *Media) Type() vo.MediaType   { return m.mediaType }
func (m *Media) URL() string          { return m.url }
func (m *Media) ObjectKey() string    { return m.objectKey }
func (m *Media) CreatedAt() time.Time { return m.createdAt }

func (m *Media) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("media ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("media ID cannot be zero")
	}
	m.id = id
	return nil
}

// SetIssueID backfills the owning issue ID on media created before the issue
// row existed.
func (m *Media) SetIssueID(issueID uint) {
	if m.issueID == 0 {
		m.issueID = issueID
	}
}
