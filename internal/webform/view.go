package webform

import (
	"report-uploader/internal/form"
)

type fileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type stateView struct {
	Files     []fileView `json:"files"`
	Month     string     `json:"month,omitempty"`
	Status    string     `json:"status"`
	Loading   bool       `json:"loading"`
	Error     string     `json:"error,omitempty"`
	ReportURL string     `json:"reportUrl,omitempty"`
	Reporting bool       `json:"reporting"`
	MaxFiles  int        `json:"maxFiles"`
	Months    []string   `json:"months,omitempty"`
}

func toView(s form.State, reporting bool) stateView {
	files := make([]fileView, 0, len(s.Files))
	for _, f := range s.Files {
		files = append(files, fileView{
			ID:          f.ID,
			Name:        f.File.Name,
			ContentType: f.File.ContentType,
			SizeBytes:   f.File.Size,
		})
	}
	status := s.Status
	if status == "" {
		status = form.StatusIdle
	}
	v := stateView{
		Files:     files,
		Month:     s.Month,
		Status:    string(status),
		Loading:   s.Loading(),
		Error:     s.Err,
		ReportURL: s.ReportURL,
		Reporting: reporting,
		MaxFiles:  form.MaxFiles,
	}
	if reporting {
		v.Months = form.Months()
	}
	return v
}
