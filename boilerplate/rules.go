package boilerplate

import "github.com/ham-zax/distill"

// SafeRules returns the broad-coverage pass. It is safe to run on
// every input and idempotent: a second application changes nothing.
// Structural containers are unwrapped rather than removed so text they
// happen to hold survives for later stages to judge.
func SafeRules() []distill.Rule {
	return []distill.Rule{
		{Selector: "script", Action: distill.ActionRemove, Description: "script blocks"},
		{Selector: "style", Action: distill.ActionRemove, Description: "style blocks"},
		{Selector: "noscript", Action: distill.ActionRemove, Description: "noscript fallbacks"},
		{Selector: "template", Action: distill.ActionRemove, Description: "inert templates"},
		{Selector: "iframe", Action: distill.ActionRemove, Description: "embedded frames"},
		{Selector: "form", Action: distill.ActionRemove, Description: "interactive forms"},
		{Selector: "button", Action: distill.ActionRemove, Description: "buttons"},
		{Selector: "select", Action: distill.ActionRemove, Description: "select controls"},
		{Selector: "svg", Action: distill.ActionRemove, Description: "inline vector graphics"},
		{Selector: "[hidden]", Action: distill.ActionRemove, Description: "hidden elements"},
		{Selector: `[aria-hidden="true"]`, Action: distill.ActionRemove, Description: "aria-hidden elements"},
		{Selector: "nav", Action: distill.ActionUnwrap, Description: "navigation containers"},
		{Selector: "header", Action: distill.ActionUnwrap, Description: "page headers"},
		{Selector: "footer", Action: distill.ActionUnwrap, Description: "page footers"},
		{Selector: "aside", Action: distill.ActionUnwrap, Description: "complementary asides"},
		{Selector: `[role="navigation"]`, Action: distill.ActionUnwrap, Description: "ARIA navigation"},
		{Selector: `[role="banner"]`, Action: distill.ActionUnwrap, Description: "ARIA banners"},
		{Selector: `[role="contentinfo"]`, Action: distill.ActionUnwrap, Description: "ARIA content info"},
		{Selector: `[role="complementary"]`, Action: distill.ActionUnwrap, Description: "ARIA complementary regions"},
	}
}

// AggressiveRules returns the narrow second pass. It prefers Remove
// and exists to delete widget content orphaned once SAFE unwrapped its
// structural parent. It only runs on the scoring-path branch, strictly
// after SAFE.
func AggressiveRules() []distill.Rule {
	return []distill.Rule{
		{Selector: ".sidebar, #sidebar", Action: distill.ActionRemove, Description: "sidebars"},
		{Selector: ".comment, .comments, #comments", Action: distill.ActionRemove, Description: "comment widgets"},
		{Selector: ".social, .share, .sharing", Action: distill.ActionRemove, Description: "social sharing widgets"},
		{Selector: ".related, .recommended", Action: distill.ActionRemove, Description: "related-content blocks"},
		{Selector: ".ad, .ads, .advert, .advertisement, .sponsored", Action: distill.ActionRemove, Description: "advertising"},
		{Selector: ".promo, .banner, .sponsor", Action: distill.ActionRemove, Description: "promotional banners"},
		{Selector: ".newsletter, .subscribe, .subscription", Action: distill.ActionRemove, Description: "subscription prompts"},
		{Selector: ".popup, .modal, .overlay", Action: distill.ActionRemove, Description: "overlays"},
		{Selector: ".cookie, .cookie-notice, .gdpr", Action: distill.ActionRemove, Description: "consent notices"},
		{Selector: ".breadcrumb, .breadcrumbs", Action: distill.ActionRemove, Description: "breadcrumbs"},
		{Selector: ".pagination, .pager", Action: distill.ActionRemove, Description: "pagination controls"},
		{Selector: ".menu, .navbar", Action: distill.ActionRemove, Description: "menus orphaned by unwrapping"},
		{Selector: ".widget", Action: distill.ActionRemove, Description: "generic widgets"},
		{Selector: ".skip-link, .sr-only", Action: distill.ActionRemove, Description: "screen-reader helpers"},
	}
}
