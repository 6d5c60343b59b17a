// Package api provides handlers for external APIs and interfaces
package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/usecases"
)

// Predictor is the part of the prediction use case the sinks depend on
type Predictor interface {
	Predict(query entities.RawQuery) (*entities.Prediction, error)
	FormatPrediction(p *entities.Prediction) string
	FormatProportions() string
	IdealProportions() []entities.Proportion
	KnownStations() []string
}

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	useCase Predictor
	input   config.InputConfig
	logger  *zap.SugaredLogger
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(cfg config.TelegramConfig, input config.InputConfig, useCase Predictor, logger *zap.SugaredLogger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Debug = cfg.Debug

	return newTelegramBot(bot, input, useCase, logger), nil
}

func newTelegramBot(bot *tgbotapi.BotAPI, input config.InputConfig, useCase Predictor, logger *zap.SugaredLogger) *TelegramBot {
	return &TelegramBot{
		bot:     bot,
		useCase: useCase,
		input:   input,
		logger:  logger,
	}
}

// Start begins listening for and handling Telegram messages until StopReceivingUpdates is called
func (t *TelegramBot) Start() {
	t.logger.Infof("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	t.logger.Info("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		t.logger.Infof("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update.Message)
	}
}

// Stop ends the update loop
func (t *TelegramBot) Stop() {
	t.bot.StopReceivingUpdates()
}

// handleMessage answers one Telegram message
func (t *TelegramBot) handleMessage(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, t.reply(message))

	t.logger.Infof("Sending response to user %s", message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Errorf("Error sending message: %v", err)
	}
}

// reply builds the response text for a message
func (t *TelegramBot) reply(message *tgbotapi.Message) string {
	if !message.IsCommand() {
		return "I don't understand. Use /help to see available commands."
	}

	switch message.Command() {
	case "start":
		return "Welcome to the Water Pollutants Predictor! " +
			"Use /predict [year] [station] to predict pollutant levels or /help for more information."

	case "help":
		return "Available commands:\n" +
			"/start - Start the bot\n" +
			fmt.Sprintf("/predict [year] [station] - Predict pollutant levels (year %d-%d)\n", t.input.YearMin, t.input.YearMax) +
			"/stations - Show the stations the model knows\n" +
			"/chart - Show the ideal pollutant proportions\n" +
			"/help - Show this help message"

	case "predict":
		return t.handlePredict(message.CommandArguments())

	case "stations":
		stations := t.useCase.KnownStations()
		if len(stations) == 0 {
			return "The model does not list any stations."
		}
		return "Known stations: " + strings.Join(stations, ", ")

	case "chart":
		return t.useCase.FormatProportions()

	default:
		t.logger.Infof("Received unknown command /%s", message.Command())
		return "Unknown command. Use /help to see available commands."
	}
}

// handlePredict parses "[year] [station]"; both are optional and fall back to the defaults
func (t *TelegramBot) handlePredict(args string) string {
	query, err := parsePredictArgs(args, t.input)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidYear) {
			return fmt.Sprintf("Please enter a year between %d and %d. Example: /predict %d %s",
				t.input.YearMin, t.input.YearMax, t.input.DefaultYear, t.input.DefaultStation)
		}
		return usecases.UserMessage(err)
	}

	prediction, err := t.useCase.Predict(query)
	if err != nil {
		t.logger.Warnf("Prediction for station '%s' failed: %v", query.StationID, err)
		return usecases.UserMessage(err)
	}
	return t.useCase.FormatPrediction(prediction)
}

func parsePredictArgs(args string, input config.InputConfig) (entities.RawQuery, error) {
	query := entities.RawQuery{Year: input.DefaultYear, StationID: input.DefaultStation}

	fields := strings.Fields(args)
	if len(fields) > 0 {
		year, err := strconv.Atoi(fields[0])
		if err != nil {
			return query, fmt.Errorf("%w: %q is not a year", entities.ErrInvalidYear, fields[0])
		}
		query.Year = year
	}
	if len(fields) > 1 {
		query.StationID = strings.Join(fields[1:], " ")
	}

	if query.Year < input.YearMin || query.Year > input.YearMax {
		return query, fmt.Errorf("%w: %d", entities.ErrInvalidYear, query.Year)
	}
	return query, nil
}
