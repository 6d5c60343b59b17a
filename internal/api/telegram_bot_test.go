package api

import (
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/entities"
)

// fakePredictor echoes the query it receives
type fakePredictor struct {
	err     error
	queries []entities.RawQuery
}

func (f *fakePredictor) Predict(q entities.RawQuery) (*entities.Prediction, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Prediction{Query: q}, nil
}

func (f *fakePredictor) FormatPrediction(p *entities.Prediction) string {
	return fmt.Sprintf("prediction for %s/%d", p.Query.StationID, p.Query.Year)
}

func (f *fakePredictor) FormatProportions() string { return "chart" }

func (f *fakePredictor) IdealProportions() []entities.Proportion { return entities.IdealProportions() }

func (f *fakePredictor) KnownStations() []string { return []string{"1", "2"} }

var testInput = config.InputConfig{YearMin: 2000, YearMax: 2100, DefaultYear: 2022, DefaultStation: "1"}

func command(text string) *tgbotapi.Message {
	length := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		length = i
	}
	return &tgbotapi.Message{
		Text:     text,
		From:     &tgbotapi.User{UserName: "tester"},
		Chat:     &tgbotapi.Chat{ID: 1},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func newTestBot(p Predictor) *TelegramBot {
	return newTelegramBot(nil, testInput, p, zap.NewNop().Sugar())
}

func TestReply_Predict(t *testing.T) {
	p := &fakePredictor{}
	bot := newTestBot(p)

	assert.Equal(t, "prediction for 7/2030", bot.reply(command("/predict 2030 7")))
	assert.Equal(t, "prediction for 1/2022", bot.reply(command("/predict")))
	assert.Equal(t, "prediction for 1/2040", bot.reply(command("/predict 2040")))
	assert.Len(t, p.queries, 3)
}

func TestReply_PredictInvalidYear(t *testing.T) {
	p := &fakePredictor{}
	bot := newTestBot(p)

	for _, text := range []string{"/predict 1999 1", "/predict 2101 1", "/predict soon 1"} {
		assert.Contains(t, bot.reply(command(text)), "Please enter a year between 2000 and 2100")
	}
	assert.Empty(t, p.queries)
}

func TestReply_PredictFailures(t *testing.T) {
	bot := newTestBot(&fakePredictor{err: entities.ErrEmptyStationID})
	assert.Equal(t, "Please enter the station ID", bot.reply(command("/predict 2022 x")))

	bot = newTestBot(&fakePredictor{err: fmt.Errorf("%w: nan", entities.ErrModelInvocation)})
	assert.Contains(t, bot.reply(command("/predict 2022 1")), "could not produce a prediction")
}

func TestReply_OtherCommands(t *testing.T) {
	bot := newTestBot(&fakePredictor{})

	assert.Contains(t, bot.reply(command("/start")), "Welcome")
	assert.Contains(t, bot.reply(command("/help")), "/predict [year] [station]")
	assert.Equal(t, "chart", bot.reply(command("/chart")))
	assert.Equal(t, "Known stations: 1, 2", bot.reply(command("/stations")))
	assert.Contains(t, bot.reply(command("/weather")), "Unknown command")
	assert.Contains(t, bot.reply(&tgbotapi.Message{Text: "hello"}), "I don't understand")
}

func TestParsePredictArgs(t *testing.T) {
	q, err := parsePredictArgs("  2050   station 9 ", testInput)
	assert.NoError(t, err)
	assert.Equal(t, entities.RawQuery{Year: 2050, StationID: "station 9"}, q)

	_, err = parsePredictArgs("3000", testInput)
	assert.ErrorIs(t, err, entities.ErrInvalidYear)
}
