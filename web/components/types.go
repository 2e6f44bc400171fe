package components

// ResultData is what the result card shows once an upload has been processed.
type ResultData struct {
	OriginalURL  string // data URL of the uploaded file
	ProcessedURL string // data URL of the composed PNG
	DownloadURL  string // endpoint serving the composed PNG as an attachment
	Filename     string
}
