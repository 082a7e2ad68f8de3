package storage

// Persisted keys. Every piece of domain data is a JSON (or plain string)
// document stored under one of these fixed keys.
const (
	KeyTransactions        = "moneypal_transactions"
	KeyTheme               = "moneypal_theme"
	KeyCurrency            = "moneypal_matauang"
	KeyCustomCategories    = "moneypal_custom_categories"
	KeyBudget              = "moneypal_budget"
	KeyNotificationEnabled = "moneypal_daily_reminder"
	KeyNotificationTime    = "moneypal_daily_reminder_time"
	KeyPIN                 = "moneypal_pin"
	KeyLanguage            = "moneypal_language"

	// KeyRestoreMarker is set before a restore commit begins and cleared
	// after it finishes. Finding it set at startup means a previous restore
	// died mid-commit and stored state may be partially applied.
	KeyRestoreMarker = "moneypal_restore_in_progress"
)
