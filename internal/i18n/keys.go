package i18n

// Ответы покупателю
const (
	Welcome           Key = "welcome"
	ChoosePackage     Key = "choose_package"
	OrderDetails      Key = "order_details"
	OrderDiscountLine Key = "order_discount_line"
	EnterPlayerID     Key = "enter_player_id"
	InvalidPlayerID   Key = "invalid_player_id"
	PlayerIDSaved     Key = "player_id_saved"
	NoPendingOrder    Key = "no_pending_order"
	PaymentInfo       Key = "payment_info"
	ScreenshotThanks  Key = "screenshot_thanks"
	PromoPrompt       Key = "promo_prompt"
	PromoApplied      Key = "promo_applied"
	PromoInvalid      Key = "promo_invalid"
	HistoryEmpty      Key = "history_empty"
	HistoryHeader     Key = "history_header"
	HistoryLine       Key = "history_line"
	Bonuses           Key = "bonuses"
	BonusesJournal    Key = "bonuses_journal"
	BonusLinePurchase Key = "bonus_line_purchase"
	BonusLineReferral Key = "bonus_line_referral"
	CustomPrompt      Key = "custom_prompt"
	CustomQuote       Key = "custom_quote"
	InvalidAmount     Key = "invalid_amount"
	ReferralLink      Key = "referral_link"
	ChooseLanguage    Key = "choose_language"
	LanguageSet       Key = "language_set"
	Reminder          Key = "reminder"
	Banned            Key = "banned"
	Forbidden         Key = "forbidden"
	Failure           Key = "failure"
	FAQPrice          Key = "faq_price"
	FAQDelivery       Key = "faq_delivery"
	FAQOrders         Key = "faq_orders"
	FAQPayment        Key = "faq_payment"
	FAQFallback       Key = "faq_fallback"
	NotSpecified      Key = "not_specified"
)

// Оператор
const (
	AdminMenu         Key = "admin_menu"
	AdminPassword     Key = "admin_password"
	AdminAuthOK       Key = "admin_auth_ok"
	AdminAuthFailed   Key = "admin_auth_failed"
	AdminAuthLocked   Key = "admin_auth_locked"
	AdminLoggedOut    Key = "admin_logged_out"
	AdminOrdersEmpty  Key = "admin_orders_empty"
	AdminOrdersHeader Key = "admin_orders_header"
	AdminOrderLine    Key = "admin_order_line"
	AdminStats        Key = "admin_stats"
	AdminStatsEmpty   Key = "admin_stats_empty"
	AdminBanPrompt    Key = "admin_ban_prompt"
	AdminBanDone      Key = "admin_ban_done"
	AdminBanInvalid   Key = "admin_ban_invalid"
	AdminPromosEmpty  Key = "admin_promos_empty"
	AdminPromosHeader Key = "admin_promos_header"
	AdminPromoLine    Key = "admin_promo_line"
	AdminPromoAdded   Key = "admin_promo_added"
	AdminPromoUsage   Key = "admin_promo_usage"
	AdminReloadOK     Key = "admin_reload_ok"
	AdminReloadFailed Key = "admin_reload_failed"
	NoticeNewOrder    Key = "notice_new_order"
	NoticePlayerID    Key = "notice_player_id"
	NoticePayment     Key = "notice_payment"
	NoticeScreenshot  Key = "notice_screenshot"
)
