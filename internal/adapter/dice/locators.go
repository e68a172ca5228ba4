package dice

import "github.com/julian/jobbider/internal/browser"

// Locator fallback chains for every interactive step. Dice ships markup
// changes frequently, so each logical control is resolved through an ordered
// chain: the most specific selector first, a generic text match last.
var (
	emailInputChain = browser.Chain{
		browser.CSS(`input[name='email']`),
		browser.CSS(`input[type='email']`),
	}

	continueChain = browser.Chain{
		browser.CSS(`button[data-testid='sign-in-button']`),
		browser.XPath(`//button[contains(text(), 'Continue')]`),
		browser.CSS(`button[type='submit']`),
	}

	passwordInputChain = browser.Chain{
		browser.CSS(`input[name='password']`),
		browser.CSS(`input[type='password']`),
	}

	signInChain = browser.Chain{
		browser.CSS(`button[data-testid='submit-password']`),
		browser.XPath(`//button[contains(text(), 'Sign In')]`),
		browser.CSS(`button[type='submit']`),
	}

	applyChain = browser.Chain{
		browser.CSS(`apply-button-wc`),
		browser.CSS(`button.btn-primary`),
		browser.XPath(`//button[contains(., 'Easy Apply') or contains(., 'Easy apply')]`),
	}

	replaceChain = browser.Chain{
		browser.CSS(`button.file-remove`),
		browser.XPath(`//button[contains(@class, 'file-remove')]`),
		browser.XPath(`//span[contains(@class, 'file-remove-subtext')]`),
		browser.XPath(`//span[contains(., 'Replace')]`),
		browser.XPath(`//button[contains(., 'Replace')]`),
		browser.CSS(`.file-remove-subtext`),
	}

	uploadProbe = browser.XPath(`//span[contains(., 'Upload')]`)

	// Apply forms can hold several file inputs; prefer the platform's named
	// picker and fall back to the last file input in the document. CSS cannot
	// express document-order-last across sibling groups, so the fallback is
	// XPath.
	fileInputChain = browser.Chain{
		browser.CSS(`input#fsp-fileUpload`),
		browser.XPath(`(//input[@type='file'])[last()]`),
	}

	uploadConfirmChain = browser.Chain{
		browser.CSS(`span.fsp-button-upload`),
		browser.CSS(`span[data-e2e='upload']`),
		browser.XPath(`//span[contains(., 'Upload')]`),
	}

	nextChain = browser.Chain{
		browser.CSS(`button.btn-next`),
		browser.XPath(`//button[contains(., 'Next')]`),
	}

	submitChain = browser.Chain{
		browser.CSS(`button.seds-button-primary`),
		browser.XPath(`//button[contains(., 'Submit')]`),
		browser.CSS(`button[type='submit']`),
	}
)
