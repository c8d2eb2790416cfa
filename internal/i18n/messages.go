package i18n

var catalogs = map[string]map[Key]string{
	Russian: ru,
	English: en,
}

var ru = map[Key]string{
	Welcome: "Здравствуйте! Это бот TopUp UC, помогу пополнить UC в PUBG Mobile.\n\n" +
		"Команды:\n" +
		"/buy - купить UC\n" +
		"/promo - ввести промокод (например, SUMMER10)\n" +
		"/history - мои заказы\n" +
		"/bonuses - мои бонусы\n" +
		"/custom - калькулятор UC\n" +
		"/referral - реферальная ссылка\n" +
		"/language - сменить язык",
	ChoosePackage: "Выберите пакет UC:",
	OrderDetails: "🛒 Заказ #{order_id}\n" +
		"Покупатель: {username}\n" +
		"Пакет: {package} UC\n" +
		"К оплате: {price}{discount}\n\n" +
		"Перевод только на карту из раздела «Оплатить», уточняйте реквизиты у оператора.\n" +
		"После оплаты пришлите скриншот платежа ответом на это сообщение.\n" +
		"UC зачисляются в течение 10-30 минут после подтверждения.",
	OrderDiscountLine: " (скидка {percent}%)",
	EnterPlayerID:     "Введите ID игрока PUBG Mobile:",
	InvalidPlayerID:   "Некорректный ID. Введите от 8 до 12 цифр.",
	PlayerIDSaved:     "ID игрока сохранён: {player_id}\nТеперь нажмите «Оплатить».",
	NoPendingOrder:    "Активного заказа нет. Выберите пакет через /buy.",
	PaymentInfo:       "Оплата {package} UC\nID игрока: {player_id}\nПосле перевода пришлите скриншот платежа.",
	ScreenshotThanks:  "Скриншот получен! Проверим и зачислим UC в течение 10-30 минут.",
	PromoPrompt:       "Введите промокод:",
	PromoApplied:      "Промокод применён! Скидка: {percent}%",
	PromoInvalid:      "Неверный промокод.",
	HistoryEmpty:      "У вас пока нет заказов.",
	HistoryHeader:     "Ваши заказы:",
	HistoryLine:       "{date}: {package} UC, {price}, {status}",
	Bonuses:           "Ваши бонусы: {bonuses} UC",
	BonusesJournal:    "Последние начисления:",
	BonusLinePurchase: "{date}: +{amount} UC за покупку",
	BonusLineReferral: "{date}: +{amount} UC за приглашённого друга",
	CustomPrompt:      "Введите количество UC для расчёта цены:",
	CustomQuote:       "{units} UC = {price}",
	InvalidAmount:     "Введите положительное целое число.",
	ReferralLink:      "Ваша реферальная ссылка: {link}\nПриглашайте друзей и получайте {percent}% бонусами от их покупок!",
	ChooseLanguage:    "Выберите язык / Select language:",
	LanguageSet:       "Язык изменён.",
	Reminder:          "Вы выбрали {package} UC, но не завершили заказ. Продолжим?",
	Banned:            "Ваш аккаунт заблокирован.",
	Forbidden:         "Доступ запрещён.",
	Failure:           "Что-то пошло не так. Попробуйте позже.",
	FAQPrice:          "Актуальные цены видны в /buy.",
	FAQDelivery:       "UC зачисляются в течение 10-30 минут после подтверждения платежа.",
	FAQOrders:         "Статус заказа можно посмотреть командой /history.",
	FAQPayment:        "Выберите пакет в /buy, введите ID игрока и следуйте инструкциям.",
	FAQFallback:       "Извините, я не понял. Список команд: /start",
	NotSpecified:      "не указан",

	AdminMenu:         "Админ-панель:",
	AdminPassword:     "🔐 Введите пароль для доступа к админ-панели:",
	AdminAuthOK:       "✅ Аутентификация успешна!",
	AdminAuthFailed:   "❌ Неверный пароль.",
	AdminAuthLocked:   "❌ Слишком много попыток, подождите 1 час.",
	AdminLoggedOut:    "Вы вышли из админ-панели.",
	AdminOrdersEmpty:  "Заказов нет.",
	AdminOrdersHeader: "Последние заказы:",
	AdminOrderLine:    "#{order_id} user {user_id}: {package} UC, {price}, {status}, ID игрока {player_id}, {date}",
	AdminStats:        "Заказов: {count}\nВыручка: {revenue}\nПопулярный пакет: {package} UC ({popular_count} {orders_word})",
	AdminStatsEmpty:   "Заказов пока нет.",
	AdminBanPrompt:    "Введите ID пользователя для блокировки:",
	AdminBanDone:      "Пользователь {user_id} заблокирован.",
	AdminBanInvalid:   "Введите корректный ID.",
	AdminPromosEmpty:  "Промокодов нет.",
	AdminPromosHeader: "Промокоды:",
	AdminPromoLine:    "{code}: {percent}%",
	AdminPromoAdded:   "Промокод {code} сохранён, скидка {percent}%.",
	AdminPromoUsage:   "Формат: /addpromo КОД ДОЛЯ (например, /addpromo VIP 0.15)",
	AdminReloadOK:     "Прайс перезагружен: {count} пакетов.",
	AdminReloadFailed: "Не удалось перезагрузить прайс, остался прежний: {error}",
	NoticeNewOrder:    "Новый заказ #{order_id}\nПользователь: {username} ({user_id})\nUC: {package}\nЦена: {price}",
	NoticePlayerID:    "Заказ пользователя {username} ({user_id}): ID игрока {player_id}",
	NoticePayment:     "Пользователь {username} ({user_id}) перешёл к оплате\nUC: {package}\nID игрока: {player_id}",
	NoticeScreenshot:  "Скриншот платежа от {username} ({user_id})",

	"btn_enter_id":     "Ввести ID",
	"btn_pay":          "Оплатить",
	"btn_lang_ru":      "Русский",
	"btn_lang_en":      "English",
	"btn_admin_orders": "Просмотреть заказы",
	"btn_admin_stats":  "Статистика",
	"btn_admin_ban":    "Заблокировать пользователя",
	"btn_admin_promos": "Промокоды",
	"btn_admin_reload": "Перезагрузить прайс",
	"btn_admin_logout": "Выйти",
}

var en = map[Key]string{
	Welcome: "Hello! This is the TopUp UC bot, I'll help you top up UC in PUBG Mobile.\n\n" +
		"Commands:\n" +
		"/buy - buy UC\n" +
		"/promo - enter a promo code (e.g. SUMMER10)\n" +
		"/history - my orders\n" +
		"/bonuses - my bonuses\n" +
		"/custom - UC calculator\n" +
		"/referral - referral link\n" +
		"/language - change language",
	ChoosePackage: "Select a UC package:",
	OrderDetails: "🛒 Order #{order_id}\n" +
		"Customer: {username}\n" +
		"Package: {package} UC\n" +
		"Amount to pay: {price}{discount}\n\n" +
		"Pay only to the card shown under \"Pay\", ask the operator when in doubt.\n" +
		"After payment, send a screenshot in reply to this message.\n" +
		"UC are credited within 10-30 minutes after confirmation.",
	OrderDiscountLine: " ({percent}% off)",
	EnterPlayerID:     "Enter your PUBG Mobile player ID:",
	InvalidPlayerID:   "Invalid ID. Enter 8 to 12 digits.",
	PlayerIDSaved:     "Player ID saved: {player_id}\nNow press \"Pay\".",
	NoPendingOrder:    "No active order. Pick a package with /buy.",
	PaymentInfo:       "Payment for {package} UC\nPlayer ID: {player_id}\nSend a screenshot after the transfer.",
	ScreenshotThanks:  "Screenshot received! We will verify it and credit UC within 10-30 minutes.",
	PromoPrompt:       "Enter a promo code:",
	PromoApplied:      "Promo code applied! Discount: {percent}%",
	PromoInvalid:      "Invalid promo code.",
	HistoryEmpty:      "You have no orders yet.",
	HistoryHeader:     "Your orders:",
	HistoryLine:       "{date}: {package} UC, {price}, {status}",
	Bonuses:           "Your bonuses: {bonuses} UC",
	BonusesJournal:    "Recent credits:",
	BonusLinePurchase: "{date}: +{amount} UC for a purchase",
	BonusLineReferral: "{date}: +{amount} UC for an invited friend",
	CustomPrompt:      "Enter the amount of UC to get a price:",
	CustomQuote:       "{units} UC = {price}",
	InvalidAmount:     "Enter a positive whole number.",
	ReferralLink:      "Your referral link: {link}\nInvite friends and get {percent}% of their purchases as bonuses!",
	ChooseLanguage:    "Выберите язык / Select language:",
	LanguageSet:       "Language changed.",
	Reminder:          "You picked {package} UC but didn't finish the order. Continue?",
	Banned:            "Your account is banned.",
	Forbidden:         "Access denied.",
	Failure:           "Something went wrong. Please try again later.",
	FAQPrice:          "Current prices are listed in /buy.",
	FAQDelivery:       "UC are credited within 10-30 minutes after payment confirmation.",
	FAQOrders:         "Check your order status with /history.",
	FAQPayment:        "Pick a package in /buy, enter your player ID and follow the instructions.",
	FAQFallback:       "Sorry, I didn't get that. Use /start for the list of commands.",
	NotSpecified:      "not specified",

	"btn_enter_id": "Enter ID",
	"btn_pay":      "Pay",
	"btn_lang_ru":  "Русский",
	"btn_lang_en":  "English",
}
