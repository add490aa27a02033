package handler

import (
	"errors"
	"net/http"

	"meeting-dashboard/internal/i18n"
	"meeting-dashboard/internal/model"
	"meeting-dashboard/internal/session"
	"meeting-dashboard/internal/video"
)

const multipartMemory = 32 << 20

func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	if !h.loggedIn(r) {
		back(w, r)
		return
	}

	// room for the other multipart fields on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.videos.MaxBytes()+1<<20)
	title := ""
	up, err := func() (video.Upload, error) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return video.Upload{}, video.ErrTooLarge
			}
			return video.Upload{}, err
		}
		title = r.FormValue("title")
		f, fh, err := r.FormFile("video")
		if errors.Is(err, http.ErrMissingFile) {
			return video.Upload{}, video.ErrNoFile
		}
		if err != nil {
			return video.Upload{}, err
		}
		defer f.Close()
		return h.videos.Save(title, fh.Filename, fh.Header.Get("Content-Type"), f)
	}()

	if err != nil {
		status, msg := http.StatusInternalServerError, "The video could not be uploaded."
		switch {
		case errors.Is(err, video.ErrTooLarge):
			status, msg = http.StatusRequestEntityTooLarge, "That video is larger than the upload limit."
		case errors.Is(err, video.ErrNotVideo):
			status, msg = http.StatusUnprocessableEntity, "Please choose a video file."
		case errors.Is(err, video.ErrNoFile):
			status, msg = http.StatusUnprocessableEntity, "Please choose a file to upload."
		default:
			h.log.Error().Err(err).Msg("upload video")
		}

		tag, _ := i18n.ResolveTag(r)
		v := h.snapshot(r, func(g *session.Gate) { g.Open(session.ModalVideo) })
		p := h.dashboard(r, v, tag)
		p.VideoTitle = title
		p.VideoError = msg
		h.render(w, status, "dashboard", p)
		return
	}

	h.log.Info().Str("id", up.ID).Int64("bytes", up.Size).Str("file", up.FileName).Msg("video uploaded")
	h.with(r, func(g *session.Gate) {
		g.Notify(model.Notification{
			Title:       "Upload complete",
			Description: up.DisplayName() + " uploaded",
		})
		g.Close(session.ModalVideo)
	})
	back(w, r)
}
