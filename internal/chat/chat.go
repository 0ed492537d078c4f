// Package chat implements a stateless rule-based assistant. Each request is
// classified against an ordered list of regex intents and answered with a
// canned, optionally personalized reply. Conversation history is supplied by
// the caller on every call; nothing is persisted between requests.
package chat

import (
	"fmt"
	"regexp"
	"strings"
)

// Links are the storefront pages interpolated into canned answers, built
// from the requesting host.
type Links struct {
	Orders  string
	Home    string
	Login   string
	Forgot  string
	Account string
}

func SiteLinks(scheme, host string) Links {
	base := fmt.Sprintf("%s://%s", scheme, host)
	return Links{
		Orders:  base + "/account.html",
		Home:    base + "/index.html",
		Login:   base + "/login.html",
		Forgot:  base + "/forgot-password.html",
		Account: base + "/account.html",
	}
}

var orderStatusRe = regexp.MustCompile(`order.*(status|track|tracking)|track.*order`)

// IsOrderStatusQuery reports whether the lowercased input asks about order
// status or tracking, the one intent answered with live data.
func IsOrderStatusQuery(q string) bool {
	return orderStatusRe.MatchString(q)
}

type intent struct {
	re     *regexp.Regexp
	answer func(links Links) string
}

// Intent order matters: the first matching pattern wins.
var intents = []intent{
	{
		re: regexp.MustCompile(`shipping|delivery|ship|arrive|when`),
		answer: func(links Links) string {
			return fmt.Sprintf("Shipping typically takes 3-7 days depending on your location. You'll receive tracking after dispatch. See products on %s", links.Home)
		},
	},
	{
		re: regexp.MustCompile(`return|refund|exchange`),
		answer: func(links Links) string {
			return fmt.Sprintf("Returns are accepted within 7 days of delivery if unused and in original packaging. Start from Account → Orders (%s).", links.Account)
		},
	},
	{
		re: regexp.MustCompile(`payment|pay|card|upi|cod|cash on delivery`),
		answer: func(Links) string {
			return "We accept cards, UPI, and wallets. Cash on delivery isn't available right now."
		},
	},
	{
		re: regexp.MustCompile(`account|profile|password|login|signup|sign up|sign-in`),
		answer: func(links Links) string {
			return fmt.Sprintf("Manage your profile and password in Account (%s). Use “Forgot password” to reset via OTP email (%s).", links.Account, links.Forgot)
		},
	},
	{
		re: regexp.MustCompile(`contact|support|help|admin`),
		answer: func(Links) string {
			return "Reach support via the announcements mailbox or email. Admin tasks are in the Admin panel (requires admin key)."
		},
	},
	{
		re: regexp.MustCompile(`products?|item|price|stock|available`),
		answer: func(links Links) string {
			return fmt.Sprintf("Browse products on the home page (%s). Each product page shows price, rating, and availability.", links.Home)
		},
	},
}

// Reply returns the canned answer for the first intent matching the
// lowercased input, if any.
func Reply(q string, links Links) (string, bool) {
	for _, it := range intents {
		if it.re.MatchString(q) {
			return it.answer(links), true
		}
	}
	return "", false
}

var (
	anaphoraRe  = regexp.MustCompile(`that|it|this`)
	followTopic = regexp.MustCompile(`order|return|shipping`)
)

// FollowUpNudge handles an unmatched turn that refers back ("that/it/this")
// to a previous order/return/shipping question.
func FollowUpNudge(q, lastUser string) (string, bool) {
	if lastUser == "" {
		return "", false
	}
	if anaphoraRe.MatchString(q) && followTopic.MatchString(strings.ToLower(lastUser)) {
		return "If you meant your previous question, you can find details under Account → Orders.", true
	}
	return "", false
}

func Fallback() string {
	return "I can help with shipping, returns, orders, account, and products. Try “What is your return policy?”"
}
