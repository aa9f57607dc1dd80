// Package status holds the fixed status vocabularies for projects, images,
// and image versions, plus the guards the review workflow applies before
// changing an image's status.
package status

type ProjectStatus string

const (
	ProjectDraft          ProjectStatus = "draft"
	ProjectInReview       ProjectStatus = "in_review"
	ProjectInProgress     ProjectStatus = "in_progress"
	ProjectAwaitingClient ProjectStatus = "awaiting_client"
	ProjectCompleted      ProjectStatus = "completed"
	ProjectArchived       ProjectStatus = "archived"
)

type ImageStatus string

const (
	ImageDraft         ImageStatus = "draft"
	ImageProcessing    ImageStatus = "processing"
	ImageDelivered     ImageStatus = "delivered"
	ImageNeedsRevision ImageStatus = "needs_revision"
	ImageApproved      ImageStatus = "approved"
	ImageArchived      ImageStatus = "archived"
)

type VersionStatus string

const (
	VersionCandidate VersionStatus = "candidate"
	VersionDelivered VersionStatus = "delivered"
	VersionApproved  VersionStatus = "approved"
	VersionRejected  VersionStatus = "rejected"
)

// AutoRevisionComment is appended to the active version whenever a reviewer
// requests a revision.
const AutoRevisionComment = "Requesting revision on this version."

// Config is the display mapping for one status value.
type Config struct {
	Label     string `json:"label"`
	ClassName string `json:"class_name"`
}

var ProjectStatusConfig = map[ProjectStatus]Config{
	ProjectDraft:          {Label: "Draft", ClassName: "bg-slate-100 text-slate-700 border border-slate-200"},
	ProjectInReview:       {Label: "In review", ClassName: "bg-amber-100 text-amber-800 border border-amber-200"},
	ProjectInProgress:     {Label: "In progress", ClassName: "bg-blue-100 text-blue-800 border border-blue-200"},
	ProjectAwaitingClient: {Label: "Awaiting you", ClassName: "bg-pink-100 text-pink-800 border border-pink-200"},
	ProjectCompleted:      {Label: "Completed", ClassName: "bg-emerald-100 text-emerald-800 border border-emerald-200"},
	ProjectArchived:       {Label: "Archived", ClassName: "bg-slate-200 text-slate-700 border border-slate-300"},
}

var ImageStatusConfig = map[ImageStatus]Config{
	ImageDraft:         {Label: "Draft", ClassName: "bg-slate-100 text-slate-700 border border-slate-200"},
	ImageProcessing:    {Label: "Processing", ClassName: "bg-amber-100 text-amber-800 border border-amber-200"},
	ImageDelivered:     {Label: "Delivered", ClassName: "bg-blue-100 text-blue-800 border border-blue-200"},
	ImageNeedsRevision: {Label: "Needs revision", ClassName: "bg-pink-100 text-pink-800 border border-pink-200"},
	ImageApproved:      {Label: "Approved", ClassName: "bg-emerald-100 text-emerald-800 border border-emerald-200"},
	ImageArchived:      {Label: "Archived", ClassName: "bg-slate-200 text-slate-700 border border-slate-300"},
}

var VersionStatusConfig = map[VersionStatus]Config{
	VersionCandidate: {Label: "Candidate", ClassName: "bg-amber-100 text-amber-800 border border-amber-200"},
	VersionDelivered: {Label: "Delivered", ClassName: "bg-blue-100 text-blue-800 border border-blue-200"},
	VersionApproved:  {Label: "Approved", ClassName: "bg-emerald-100 text-emerald-800 border border-emerald-200"},
	VersionRejected:  {Label: "Rejected", ClassName: "bg-rose-100 text-rose-800 border border-rose-200"},
}

func ValidProjectStatus(s string) bool {
	_, ok := ProjectStatusConfig[ProjectStatus(s)]
	return ok
}

func ValidImageStatus(s string) bool {
	_, ok := ImageStatusConfig[ImageStatus(s)]
	return ok
}

func ValidVersionStatus(s string) bool {
	_, ok := VersionStatusConfig[VersionStatus(s)]
	return ok
}

// CanApprove reports whether an image whose active version carries the given
// status may be approved.
func CanApprove(v VersionStatus) bool {
	return v == VersionDelivered || v == VersionCandidate
}

// CanRequestRevision reports whether a revision may be requested against the
// active version.
func CanRequestRevision(v VersionStatus) bool {
	return v != VersionApproved
}
