package i18n

// catalog holds every UI string. Params use the universal-translator
// {0}, {1} placeholders.
var catalog = map[string]map[string]string{
	"en": {
		"site.title":   "Emaar - Restoring Mosques",
		"site.tagline": "Rebuild the houses of God, one project at a time",

		"nav.home":      "Home",
		"nav.projects":  "Projects",
		"nav.mosques":   "Mosques",
		"nav.dashboard": "Dashboard",
		"nav.login":     "Sign in",
		"nav.logout":    "Sign out",
		"nav.language":  "العربية",

		"common.loading":   "Checking your session...",
		"common.search":    "Search",
		"common.filter":    "Filter",
		"common.all":       "All",
		"common.next":      "Next",
		"common.previous":  "Previous",
		"common.submit":    "Submit",
		"common.empty":     "Nothing to show yet.",
		"common.demo":      "Live data is unavailable right now. Showing sample content.",
		"common.fetch_err": "We could not load this section. Please try again later.",
		"common.saved":     "Saved.",

		"home.featured":     "Featured projects",
		"home.total_raised": "Total raised",
		"home.projects":     "Active projects",

		"projects.title":            "Restoration projects",
		"projects.target":           "Target",
		"projects.raised":           "Raised",
		"projects.remaining":        "Remaining",
		"projects.progress":         "{0} funded",
		"projects.donors":           "{0} donors",
		"projects.donate":           "Donate",
		"projects.not_found":        "Project not found.",
		"projects.status.active":    "Active",
		"projects.status.completed": "Completed",
		"projects.status.paused":    "Paused",

		"donate.title":       "Support this project",
		"donate.name":        "Your name",
		"donate.phone":       "Phone",
		"donate.amount":      "Amount",
		"donate.currency":    "Currency",
		"donate.notes":       "Notes",
		"donate.receipt":     "Transfer receipt",
		"donate.thanks":      "Thank you. Your donation was received and is awaiting review.",
		"donate.bad_receipt": "The receipt must be an image or a PDF.",

		"mosques.title":       "Mosques",
		"mosques.governorate": "Governorate",
		"mosques.damage":      "Damage level",
		"mosques.media":       "Photos and documents",
		"mosques.location":    "Location",

		"login.title":    "Staff sign in",
		"login.email":    "Email",
		"login.password": "Password",
		"login.submit":   "Sign in",

		"unauthorized.title": "Access denied",
		"unauthorized.body":  "Your account does not have permission to open this page.",

		"dashboard.title":     "Dashboard",
		"dashboard.welcome":   "Welcome, {0}",
		"dashboard.donations": "Donations",
		"dashboard.mosques":   "Mosques",
		"dashboard.import":    "Import mosques",
		"dashboard.approve":   "Approve",
		"dashboard.reject":    "Reject",
		"dashboard.receipt":   "Receipt",
		"dashboard.status":    "Status",
		"dashboard.date":      "Date",
		"dashboard.donor":     "Donor",
		"dashboard.pending":   "Pending donations",
		"dashboard.note":      "Review note",
		"dashboard.role":      "Signed in as {0}",

		"donation.status.pending":  "Pending",
		"donation.status.approved": "Approved",
		"donation.status.rejected": "Rejected",

		"import.file":      "Spreadsheet (.xlsx, .xls, .csv)",
		"import.history":   "Import history",
		"import.rows":      "{0} of {1} rows imported",
		"import.queued":    "The file was uploaded and queued for import.",
		"import.bad_type":  "Only .xlsx, .xls and .csv files are accepted.",
		"import.too_large": "The file is larger than {0}.",
		"import.missing":   "Choose a file to upload.",
		"import.file_name": "File",

		"media.file":     "Photo or document (.jpg, .png, .webp, .pdf)",
		"media.uploaded": "The file was uploaded.",
		"media.bad_type": "Only images and PDF files are accepted.",
		"media.missing":  "Choose a file to upload.",

		"import.status.queued":     "Queued",
		"import.status.processing": "Processing",
		"import.status.completed":  "Completed",
		"import.status.failed":     "Failed",

		"errors.network":         "Unable to reach the server. Check your connection and try again.",
		"errors.unauthorized":    "The email or password is incorrect.",
		"errors.forbidden":       "This account is not allowed to sign in here.",
		"errors.validation":      "Some fields are invalid. Please review the form.",
		"errors.rate_limited":    "Too many attempts. Please wait a moment and try again.",
		"errors.server":          "The server ran into a problem. Please try again later.",
		"errors.unknown":         "Something went wrong. Please try again.",
		"errors.not_found":       "The page you requested does not exist.",
		"errors.session_expired": "Your session has expired. Please sign in again.",
		"errors.title":           "Something went wrong",
	},
	"ar": {
		"site.title":   "إعمار - ترميم المساجد",
		"site.tagline": "نعيد بناء بيوت الله، مشروعاً بعد مشروع",

		"nav.home":      "الرئيسية",
		"nav.projects":  "المشاريع",
		"nav.mosques":   "المساجد",
		"nav.dashboard": "لوحة التحكم",
		"nav.login":     "تسجيل الدخول",
		"nav.logout":    "تسجيل الخروج",
		"nav.language":  "English",

		"common.loading":   "جارٍ التحقق من الجلسة...",
		"common.search":    "بحث",
		"common.filter":    "تصفية",
		"common.all":       "الكل",
		"common.next":      "التالي",
		"common.previous":  "السابق",
		"common.submit":    "إرسال",
		"common.empty":     "لا يوجد شيء لعرضه بعد.",
		"common.demo":      "البيانات الحية غير متاحة حالياً. يتم عرض محتوى تجريبي.",
		"common.fetch_err": "تعذر تحميل هذا القسم. يرجى المحاولة لاحقاً.",
		"common.saved":     "تم الحفظ.",

		"home.featured":     "مشاريع مميزة",
		"home.total_raised": "إجمالي التبرعات",
		"home.projects":     "المشاريع النشطة",

		"projects.title":            "مشاريع الترميم",
		"projects.target":           "المبلغ المستهدف",
		"projects.raised":           "المبلغ المجموع",
		"projects.remaining":        "المتبقي",
		"projects.progress":         "تم تمويل {0}",
		"projects.donors":           "{0} متبرع",
		"projects.donate":           "تبرع",
		"projects.not_found":        "المشروع غير موجود.",
		"projects.status.active":    "نشط",
		"projects.status.completed": "مكتمل",
		"projects.status.paused":    "متوقف",

		"donate.title":       "ادعم هذا المشروع",
		"donate.name":        "الاسم",
		"donate.phone":       "رقم الهاتف",
		"donate.amount":      "المبلغ",
		"donate.currency":    "العملة",
		"donate.notes":       "ملاحظات",
		"donate.receipt":     "إيصال التحويل",
		"donate.thanks":      "شكراً لك. تم استلام تبرعك وهو بانتظار المراجعة.",
		"donate.bad_receipt": "يجب أن يكون الإيصال صورة أو ملف PDF.",

		"mosques.title":       "المساجد",
		"mosques.governorate": "المحافظة",
		"mosques.damage":      "درجة الضرر",
		"mosques.media":       "الصور والمستندات",
		"mosques.location":    "الموقع",

		"login.title":    "دخول الموظفين",
		"login.email":    "البريد الإلكتروني",
		"login.password": "كلمة المرور",
		"login.submit":   "دخول",

		"unauthorized.title": "غير مصرح",
		"unauthorized.body":  "لا يملك حسابك صلاحية فتح هذه الصفحة.",

		"dashboard.title":     "لوحة التحكم",
		"dashboard.welcome":   "مرحباً، {0}",
		"dashboard.donations": "التبرعات",
		"dashboard.mosques":   "المساجد",
		"dashboard.import":    "استيراد المساجد",
		"dashboard.approve":   "قبول",
		"dashboard.reject":    "رفض",
		"dashboard.receipt":   "الإيصال",
		"dashboard.status":    "الحالة",
		"dashboard.date":      "التاريخ",
		"dashboard.donor":     "المتبرع",
		"dashboard.pending":   "تبرعات بانتظار المراجعة",
		"dashboard.note":      "ملاحظة المراجعة",
		"dashboard.role":      "مسجل الدخول بصفة {0}",

		"donation.status.pending":  "قيد المراجعة",
		"donation.status.approved": "مقبول",
		"donation.status.rejected": "مرفوض",

		"import.file":      "ملف جدول البيانات (.xlsx, .xls, .csv)",
		"import.history":   "سجل الاستيراد",
		"import.rows":      "تم استيراد {0} من {1} صف",
		"import.queued":    "تم رفع الملف وإضافته إلى قائمة الاستيراد.",
		"import.bad_type":  "يقبل فقط ملفات .xlsx و .xls و .csv.",
		"import.too_large": "حجم الملف أكبر من {0}.",
		"import.missing":   "اختر ملفاً لرفعه.",
		"import.file_name": "الملف",

		"media.file":     "صورة أو مستند (.jpg, .png, .webp, .pdf)",
		"media.uploaded": "تم رفع الملف.",
		"media.bad_type": "يُقبل رفع الصور وملفات PDF فقط.",
		"media.missing":  "اختر ملفاً لرفعه.",

		"import.status.queued":     "في الانتظار",
		"import.status.processing": "قيد المعالجة",
		"import.status.completed":  "مكتمل",
		"import.status.failed":     "فشل",

		"errors.network":         "تعذر الاتصال بالخادم. تحقق من اتصالك وحاول مجدداً.",
		"errors.unauthorized":    "البريد الإلكتروني أو كلمة المرور غير صحيحة.",
		"errors.forbidden":       "هذا الحساب غير مسموح له بالدخول هنا.",
		"errors.validation":      "بعض الحقول غير صالحة. يرجى مراجعة النموذج.",
		"errors.rate_limited":    "محاولات كثيرة. يرجى الانتظار قليلاً ثم المحاولة مجدداً.",
		"errors.server":          "حدثت مشكلة في الخادم. يرجى المحاولة لاحقاً.",
		"errors.unknown":         "حدث خطأ ما. يرجى المحاولة مجدداً.",
		"errors.not_found":       "الصفحة المطلوبة غير موجودة.",
		"errors.session_expired": "انتهت صلاحية جلستك. يرجى تسجيل الدخول مجدداً.",
		"errors.title":           "حدث خطأ",
	},
}
