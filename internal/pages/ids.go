package pages

// Regions of the shell that are replaced wholesale.
const (
	RegionHeader = "header"
	RegionNav    = "mainMenu"
	RegionStats  = "stats"
	RegionMain   = "mainContent"
	RegionModal  = "modalRoot"
	RegionToasts = "toasts"
)

// Shell controls, bound once per session.
const (
	LoginBtn   = "loginBtn"
	SignupLink = "signupLink"
	LogoutLink = "logoutLink"

	NavHome     = "navHome"
	NavProfile  = "navProfile"
	NavSettings = "navSettings"
	NavHelp     = "navHelp"

	StatUsed      = "statUsed"
	StatRemaining = "statRemaining"
	StatType      = "statType"
	StatTypeLabel = "statTypeLabel"

	ModalClose   = "modalClose"
	ModalCancel  = "modalCancel"
	ModalConfirm = "modalConfirm"
)

// Home page.
const (
	FileInput   = "fileInput"
	UploadZone  = "uploadZone"
	UploadText  = "uploadText"
	Preview     = "preview"
	BrowseBtn   = "browseBtn"
	AnalyzeBtn  = "analyzeBtn"
	ResetBtn    = "resetBtn"
	ResultPanel = "resultPanel"
)

// Account pages.
const (
	LoginForm  = "loginForm"
	SignupForm = "signupForm"
	ToSignup   = "toSignup"
	ToLogin    = "toLogin"

	ChangePasswordBtn = "changePasswordBtn"
	ProfileLogoutBtn  = "profileLogoutBtn"
	UpgradeBtn        = "upgradeBtn"
)

// Settings and help pages.
const (
	ThemeToggle        = "themeToggle"
	NotificationToggle = "notificationToggle"
	EmailToggle        = "emailToggle"
	ContactBtn         = "contactBtn"
)
