package upload

type createInput struct{}

type createOutput struct {
	Body CreateResponse
}

type CreateResponse struct {
	Key string `json:"key" doc:"Storage key to store in the note's audio_path"`
	URL string `json:"url" doc:"Presigned PUT URL, valid for a short window"`
}

type downloadInput struct {
	Key string `query:"key" required:"true" doc:"Storage key from the note's audio_path"`
}

type downloadOutput struct {
	Body DownloadResponse
}

type DownloadResponse struct {
	URL string `json:"url" doc:"Presigned GET URL, valid for a short window"`
}
