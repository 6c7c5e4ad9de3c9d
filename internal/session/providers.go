package session

import (
	"context"

	"github.com/book-expert/logger"

	"github.com/redredchen01/velvet-whisper/internal/config"
	"github.com/redredchen01/velvet-whisper/internal/pipeline"
	"github.com/redredchen01/velvet-whisper/internal/provider/gemini"
	"github.com/redredchen01/velvet-whisper/internal/provider/local"
	"github.com/redredchen01/velvet-whisper/internal/settings"
)

// NewProviderFactory builds the production transports for a generation
// attempt. The hosted client always backs the image and speech stages; local
// mode substitutes the text stage only.
func NewProviderFactory(cfg config.ProviderConfig, log *logger.Logger) ProviderFactory {
	return func(ctx context.Context, st settings.Settings) (pipeline.Providers, func(), error) {
		hosted, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      st.APIKey,
			TextModel:   cfg.TextModel,
			ImageModel:  cfg.ImageModel,
			SpeechModel: cfg.SpeechModel,
			SampleRate:  cfg.SampleRate,
			Channels:    cfg.Channels,
		}, log)
		if err != nil {
			return pipeline.Providers{}, nil, err
		}

		providers := pipeline.Providers{
			Text:   hosted,
			Image:  hosted,
			Speech: hosted,
		}

		if st.UseLocalModel {
			providers.Text = local.NewClient(st.LocalBaseURL, st.LocalModel, log)
		}

		closer := func() {
			closeErr := hosted.Close()
			if closeErr != nil {
				log.Warn("Failed to close provider client: %v", closeErr)
			}
		}

		return providers, closer, nil
	}
}
