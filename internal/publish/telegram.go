package publish

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// maxAlbumPhotos limits how many saved photos travel with the preview.
const maxAlbumPhotos = 4

// Publisher posts a generated preview to a Telegram channel. It is an
// optional tail of the pipeline; publish failures never fail the run.
type Publisher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewPublisher authorizes against the Telegram bot API.
func NewPublisher(botToken string, chatID int64) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	bot.Debug = false
	log.Info().Str("username", bot.Self.UserName).Msg("telegram publisher authorized")
	return &Publisher{bot: bot, chatID: chatID}, nil
}

// Publish sends the post text with up to four saved photos as an album
// (caption on the first photo). Without photos a plain message is sent.
func (p *Publisher) Publish(text string, imagePaths []string) error {
	if len(imagePaths) == 0 {
		msg := tgbotapi.NewMessage(p.chatID, text)
		if _, err := p.bot.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
		return nil
	}

	if len(imagePaths) > maxAlbumPhotos {
		imagePaths = imagePaths[:maxAlbumPhotos]
	}

	var media []interface{}
	for i, path := range imagePaths {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(path))
		if i == 0 {
			photo.Caption = text
		}
		media = append(media, photo)
	}

	group := tgbotapi.NewMediaGroup(p.chatID, media)
	if _, err := p.bot.SendMediaGroup(group); err != nil {
		return fmt.Errorf("failed to send media group: %w", err)
	}

	log.Info().Int64("chatID", p.chatID).Int("photos", len(imagePaths)).Msg("post published to telegram")
	return nil
}
