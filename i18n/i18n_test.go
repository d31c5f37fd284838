package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/enums"
)

type BundleTestSuite struct {
	suite.Suite
	bundle *Bundle
}

func (s *BundleTestSuite) SetupSuite() {
	b, err := New()
	s.Require().NoError(err)
	s.bundle = b
}

func (s *BundleTestSuite) TestCatalogsHaveSameKeys() {
	for key := range catalog["en"] {
		_, ok := catalog["ar"][key]
		s.True(ok, "arabic catalog is missing %q", key)
	}
	for key := range catalog["ar"] {
		_, ok := catalog["en"][key]
		s.True(ok, "english catalog is missing %q", key)
	}
}

func (s *BundleTestSuite) TestEveryErrorKindHasMessage() {
	for _, kind := range apierr.Kinds {
		key := apierr.MessageKey(kind)
		s.NotEqual(key, s.bundle.T(enums.LocaleEnglish, key))
		s.NotEqual(key, s.bundle.T(enums.LocaleArabic, key))
	}
}

func (s *BundleTestSuite) TestTranslate() {
	s.Equal("Sign in", s.bundle.T(enums.LocaleEnglish, "nav.login"))
	s.Equal("تسجيل الدخول", s.bundle.T(enums.LocaleArabic, "nav.login"))
	s.Equal("Welcome, Omar", s.bundle.T(enums.LocaleEnglish, "dashboard.welcome", "Omar"))
	s.Equal("missing.key", s.bundle.T(enums.LocaleEnglish, "missing.key"))
	s.Equal("الرئيسية", s.bundle.T(enums.Locale("fr"), "nav.home"))
}

func (s *BundleTestSuite) TestNegotiate() {
	testCases := []struct {
		header   string
		expected enums.Locale
	}{
		{"", enums.LocaleArabic},
		{"en-US,en;q=0.9", enums.LocaleEnglish},
		{"ar-SY,ar;q=0.9,en;q=0.8", enums.LocaleArabic},
		{"fr-FR,en;q=0.5", enums.LocaleEnglish},
		{"de-DE", enums.LocaleArabic},
		{"%%%", enums.LocaleArabic},
	}

	for _, tc := range testCases {
		s.Run(tc.header, func() {
			s.Equal(tc.expected, s.bundle.Negotiate(tc.header))
		})
	}
}

func (s *BundleTestSuite) TestFormatPercent() {
	s.Contains(s.bundle.FormatPercent(enums.LocaleEnglish, 50, 0), "50")
	s.Contains(s.bundle.FormatPercent(enums.LocaleEnglish, 50, 0), "%")
	s.Equal("1,234.5", s.bundle.FormatNumber(enums.LocaleEnglish, 1234.5, 1))
}

func (s *BundleTestSuite) TestValidationMessages() {
	v, err := s.bundle.NewValidator()
	require.NoError(s.T(), err)

	type form struct {
		Email string `form:"email" validate:"required,email"`
	}
	verr := v.Struct(form{})
	require.Error(s.T(), verr)

	enMsgs := s.bundle.ValidationMessages(enums.LocaleEnglish, verr)
	s.Equal("email is a required field", enMsgs["email"])

	arMsgs := s.bundle.ValidationMessages(enums.LocaleArabic, verr)
	s.Equal("الحقل email مطلوب", arMsgs["email"])

	s.Nil(s.bundle.ValidationMessages(enums.LocaleEnglish, assert.AnError))
}

func TestBundleTestSuite(t *testing.T) {
	suite.Run(t, new(BundleTestSuite))
}

func TestDirAndSwitchPath(t *testing.T) {
	assert.Equal(t, "rtl", Dir(enums.LocaleArabic))
	assert.Equal(t, "ltr", Dir(enums.LocaleEnglish))
	assert.Equal(t, enums.LocaleEnglish, Other(enums.LocaleArabic))

	assert.Equal(t, "/en/projects/4", SwitchPath("/ar/projects/4", enums.LocaleEnglish))
	assert.Equal(t, "/ar", SwitchPath("/en", enums.LocaleArabic))
	assert.Equal(t, "/en/healthz", SwitchPath("/healthz", enums.LocaleEnglish))
}
