// Package shop реализует сценарий покупки: принимает события от транспорта,
// ведёт диалог по состоянию сессии и меняет журнал заказов и бонусы.
// Транспорт, тексты и таймеры подключаются через интерфейсы.
package shop

// Sender: автор события.
type Sender struct {
	ID           int64
	Username     string
	LanguageCode string // Язык клиента Telegram (en-US), может быть пустым
}

// Event: входящее событие.
type Event interface {
	From() Sender
}

// Command: команда (/start ref123).
type Command struct {
	Sender Sender
	Name   string
	Args   []string
}

// Selection: нажатие кнопки с токеном.
type Selection struct {
	Sender Sender
	Token  string
}

// Text: свободный текст.
type Text struct {
	Sender  Sender
	Content string
}

// MediaProof: скриншот оплаты. MediaRef пересылается оператору как есть.
type MediaProof struct {
	Sender   Sender
	MediaRef string
	Caption  string
}

func (e Command) From() Sender    { return e.Sender }
func (e Selection) From() Sender  { return e.Sender }
func (e Text) From() Sender       { return e.Sender }
func (e MediaProof) From() Sender { return e.Sender }

// Команды
const (
	CmdStart    = "start"
	CmdBuy      = "buy"
	CmdBuyUC    = "buy_uc"
	CmdPromo    = "promo"
	CmdHistory  = "history"
	CmdBonuses  = "bonuses"
	CmdCustom   = "custom"
	CmdReferral = "referral"
	CmdLanguage = "language"
	CmdAdmin    = "admin"
	CmdAddPromo = "addpromo"
)

// Токены кнопок, кроме пакетов и админ-меню
const (
	TokenEnterID    = "enter_id"
	TokenPay        = "pay"
	TokenLangPrefix = "lang_"
)
