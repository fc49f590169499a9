package i18n

import (
	"strconv"
	"strings"
)

type EmailContent struct {
	Subject string
	Text    string
	HTML    string
}

type emailStrings struct {
	InviteSubject string
	InviteText    string
	InviteHTML    string
}

var emailTranslations = map[string]emailStrings{
	"en": {
		InviteSubject: "Confirm your email",
		InviteText:    "Your confirmation code is: {code}\nIt is valid for {hours} hour(s).",
		InviteHTML: "<p>Confirm your email</p>" +
			"<p>Your confirmation code is:</p>" +
			"<p><strong>{code}</strong></p>" +
			"<p>The code expires in {hours} hour(s).</p>" +
			"<p>If you did not request this, you can ignore this email.</p>",
	},
	"de": {
		InviteSubject: "E-Mail-Adresse bestätigen",
		InviteText:    "Dein Bestätigungscode lautet: {code}\nEr ist {hours} Stunde(n) gültig.",
		InviteHTML: "<p>E-Mail-Adresse bestätigen</p>" +
			"<p>Dein Bestätigungscode lautet:</p>" +
			"<p><strong>{code}</strong></p>" +
			"<p>Der Code läuft in {hours} Stunde(n) ab.</p>" +
			"<p>Falls du das nicht angefordert hast, ignoriere diese E-Mail.</p>",
	},
}

func InviteEmail(locale, code string, hours int) EmailContent {
	t := translationsFor(locale)
	replace := func(s string) string {
		s = strings.ReplaceAll(s, "{code}", code)
		return strings.ReplaceAll(s, "{hours}", strconv.Itoa(hours))
	}
	return EmailContent{
		Subject: t.InviteSubject,
		Text:    replace(t.InviteText),
		HTML:    replace(t.InviteHTML),
	}
}

func translationsFor(locale string) emailStrings {
	if t, ok := emailTranslations[locale]; ok {
		return t
	}
	return emailTranslations[DefaultLocale]
}
