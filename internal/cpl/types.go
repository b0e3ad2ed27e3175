package cpl

// Aspect is the screen aspect classification of a composition.
type Aspect string

const (
	AspectFlat  Aspect = "Flat"
	AspectScope Aspect = "Scope"
)

// Asset references a piece of essence by UUID. Path and Hash are carried
// through when present but never interpreted; the compiler treats essence as
// opaque.
type Asset struct {
	UUID string `json:"uuid"`
	Path string `json:"path,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// Reel is an ordered playback segment of a composition. ID is the reel's
// structural position within its owning document ("reel-0", "reel-1", ...);
// UUID is the reel's own identity. Assets preserve source document order.
type Reel struct {
	ID       string  `json:"id"`
	UUID     string  `json:"uuid"`
	Assets   []Asset `json:"assets"`
	Duration int     `json:"duration,omitempty"`
	EditRate string  `json:"editRate,omitempty"`
}

// Metadata is the parsed representation of one CPL document.
type Metadata struct {
	UUID         string `json:"uuid"`
	ContentTitle string `json:"contentTitle"`
	EditRate     string `json:"editRate"`
	Aspect       Aspect `json:"aspect"`
	Encrypted    bool   `json:"encrypted"`
	Reels        []Reel `json:"reels"`
	IssueDate    string `json:"issueDate,omitempty"`
	Creator      string `json:"creator,omitempty"`
}
