package handler

import (
	"context"

	"podcasts/internal/model"
	"podcasts/internal/service"
)

// PodcastHandler exposes podcast and episode operations.
type PodcastHandler struct {
	podcasts service.PodcastService
}

// NewPodcastHandler creates a podcast handler.
func NewPodcastHandler(podcasts service.PodcastService) *PodcastHandler {
	return &PodcastHandler{podcasts: podcasts}
}

// PodcastIDInput addresses a single podcast.
type PodcastIDInput struct {
	ID uint `json:"id"`
}

// CreatePodcastInput is the input of createPodcast.
type CreatePodcastInput struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// UpdatePodcastPayload holds the podcast fields to change.
type UpdatePodcastPayload struct {
	Title    *string  `json:"title" validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Rating   *float64 `json:"rating" validate:"omitempty,min=1,max=5"`
}

// UpdatePodcastInput is the input of updatePodcast.
type UpdatePodcastInput struct {
	ID      uint                 `json:"id"`
	Payload UpdatePodcastPayload `json:"payload"`
}

// CreateEpisodeInput is the input of createEpisode.
type CreateEpisodeInput struct {
	PodcastID uint   `json:"podcastId"`
	Title     string `json:"title" validate:"required"`
	Category  string `json:"category" validate:"required"`
}

// UpdateEpisodeInput is the input of updateEpisode.
type UpdateEpisodeInput struct {
	PodcastID uint    `json:"podcastId"`
	EpisodeID uint    `json:"episodeId"`
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Category  *string `json:"category" validate:"omitempty,min=1"`
}

// EpisodeRefInput addresses an episode inside a podcast.
type EpisodeRefInput struct {
	PodcastID uint `json:"podcastId"`
	EpisodeID uint `json:"episodeId"`
}

// CreateOutput carries the id of a created entity.
type CreateOutput struct {
	Output
	ID *uint `json:"id"`
}

// PodcastsOutput carries a podcast list.
type PodcastsOutput struct {
	Output
	Podcasts []model.Podcast `json:"podcasts"`
}

// PodcastOutput carries one podcast with its episodes.
type PodcastOutput struct {
	Output
	Podcast *model.Podcast `json:"podcast"`
}

// EpisodesOutput carries the episodes of a podcast.
type EpisodesOutput struct {
	Output
	Episodes []model.Episode `json:"episodes"`
}

// Operations returns the podcast operations by name.
func (h *PodcastHandler) Operations() map[string]operation {
	return map[string]operation{
		"getAllPodcasts": handle(Private, h.getAllPodcasts),
		"getPodcast":     handle(Private, h.getPodcast),
		"createPodcast":  handle(HostOnly, h.createPodcast),
		"updatePodcast":  handle(HostOnly, h.updatePodcast),
		"deletePodcast":  handle(HostOnly, h.deletePodcast),
		"getEpisodes":    handle(Private, h.getEpisodes),
		"createEpisode":  handle(HostOnly, h.createEpisode),
		"updateEpisode":  handle(HostOnly, h.updateEpisode),
		"deleteEpisode":  handle(HostOnly, h.deleteEpisode),
	}
}

func (h *PodcastHandler) getAllPodcasts(ctx context.Context, _ *model.User, _ *NoInput) interface{} {
	podcasts, err := h.podcasts.GetAllPodcasts(ctx)
	if err != nil {
		return PodcastsOutput{Output: failure(err)}
	}
	return PodcastsOutput{Output: success(), Podcasts: podcasts}
}

func (h *PodcastHandler) getPodcast(ctx context.Context, _ *model.User, in *PodcastIDInput) interface{} {
	podcast, err := h.podcasts.GetPodcast(ctx, in.ID)
	if err != nil {
		return PodcastOutput{Output: failure(err)}
	}
	return PodcastOutput{Output: success(), Podcast: podcast}
}

func (h *PodcastHandler) createPodcast(ctx context.Context, _ *model.User, in *CreatePodcastInput) interface{} {
	id, err := h.podcasts.CreatePodcast(ctx, in.Title, in.Category)
	if err != nil {
		return CreateOutput{Output: failure(err)}
	}
	return CreateOutput{Output: success(), ID: &id}
}

func (h *PodcastHandler) updatePodcast(ctx context.Context, _ *model.User, in *UpdatePodcastInput) interface{} {
	err := h.podcasts.UpdatePodcast(ctx, in.ID, service.UpdatePodcastInput{
		Title:    in.Payload.Title,
		Category: in.Payload.Category,
		Rating:   in.Payload.Rating,
	})
	if err != nil {
		return failure(err)
	}
	return success()
}

func (h *PodcastHandler) deletePodcast(ctx context.Context, _ *model.User, in *PodcastIDInput) interface{} {
	if err := h.podcasts.DeletePodcast(ctx, in.ID); err != nil {
		return failure(err)
	}
	return success()
}

func (h *PodcastHandler) getEpisodes(ctx context.Context, _ *model.User, in *PodcastIDInput) interface{} {
	episodes, err := h.podcasts.GetEpisodes(ctx, in.ID)
	if err != nil {
		return EpisodesOutput{Output: failure(err)}
	}
	return EpisodesOutput{Output: success(), Episodes: episodes}
}

func (h *PodcastHandler) createEpisode(ctx context.Context, _ *model.User, in *CreateEpisodeInput) interface{} {
	id, err := h.podcasts.CreateEpisode(ctx, in.PodcastID, in.Title, in.Category)
	if err != nil {
		return CreateOutput{Output: failure(err)}
	}
	return CreateOutput{Output: success(), ID: &id}
}

func (h *PodcastHandler) updateEpisode(ctx context.Context, _ *model.User, in *UpdateEpisodeInput) interface{} {
	err := h.podcasts.UpdateEpisode(ctx, in.PodcastID, in.EpisodeID, service.UpdateEpisodeInput{
		Title:    in.Title,
		Category: in.Category,
	})
	if err != nil {
		return failure(err)
	}
	return success()
}

func (h *PodcastHandler) deleteEpisode(ctx context.Context, _ *model.User, in *EpisodeRefInput) interface{} {
	if err := h.podcasts.DeleteEpisode(ctx, in.PodcastID, in.EpisodeID); err != nil {
		return failure(err)
	}
	return success()
}
