// Package content holds the scripted conversation tables for HealthBot.
//
// The tables are fixed at build time and loaded once per process: the three
// support categories, their sub-categories, the long-form detail bodies, and
// the per-category emergency helpline blocks. There is no mutation API; all
// access goes through read-only lookups. Validate asserts that every
// (category, sub-category) pair resolves to a detail body and every category
// to a helpline block, so a gap in the shipped tables fails the build's test
// run instead of surfacing at runtime.
package content

import (
	"fmt"

	"github.com/ConnectHealth/HealthBot/internal/models"
)

// Fixed conversation literals.
const (
	// Greeting seeds every new session as the first bot message.
	Greeting = "Hello! I'm the Connect Health bot. How can I help you today?"
	// YesReplyText is the verbatim user echo for answering yes to a prompt.
	YesReplyText = "Yes, I'd like more information"
	// NoReplyText is the verbatim user echo for declining a prompt.
	NoReplyText = "No, thank you"
	// HelplineHeader separates the informational body from the helpline block.
	HelplineHeader = "\n\nEmergency Helplines:\n"
	// DeclineLeadIn opens the bot response when the user declines more detail.
	DeclineLeadIn = "That's completely okay. Whenever you feel ready, support is always available."
	// ClosingLine ends every terminal response in the scripted tree.
	ClosingLine = "\n\nRemember, you are not alone. Reaching out for help is a sign of strength. 💙"
	// FallbackLeadIn opens the helpline-only response used when a detail lookup
	// fails; the shipped tables are total, so reaching it is a defect.
	FallbackLeadIn = "I'm sorry, I couldn't find that information right now."
	// ApologyText is the single bot message appended when the remote reply fails.
	ApologyText = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."
)

var categories = []models.Category{
	{
		Key:        "mental",
		Label:      "Mental Health",
		IntroReply: "I'm sorry you're going through a difficult time. Your feelings are valid, and you're not alone. Which of these is closest to what's been troubling you?",
	},
	{
		Key:        "sexual",
		Label:      "Sexual Health",
		IntroReply: "Thank you for reaching out — asking questions about sexual health is a responsible thing to do, and everything here stays private. What would you like to know more about?",
	},
	{
		Key:        "drugs",
		Label:      "Drug Addiction",
		IntroReply: "Reaching out about substance use takes real courage, and recovery is possible. Which of these concerns you most right now?",
	},
}

var subCategories = map[string][]models.SubCategory{
	"mental": {
		{
			Label:    "Anxiety",
			BotReply: "I'm sorry to hear anxiety has been weighing on you. Constant worry, restlessness, and panic attacks are more common than most people realize, and they are treatable. Would you like more information about anxiety?",
		},
		{
			Label:    "Depression",
			BotReply: "That sounds really heavy, and I'm glad you told me. Persistent sadness and loss of interest are signs of depression, not weakness — and help works. Would you like more information about depression?",
		},
		{
			Label:    "PTSD",
			BotReply: "Living with the after-effects of trauma is exhausting, and what you're feeling is a real, recognized condition. Would you like more information about PTSD?",
		},
		{
			Label:    "Bipolar Disorder",
			BotReply: "Extreme highs and lows in mood can be confusing and frightening, but with the right care they can be managed. Would you like more information about bipolar disorder?",
		},
		{
			Label:    "OCD",
			BotReply: "Repetitive thoughts and compulsions can take over your day, and it isn't your fault. OCD responds well to treatment. Would you like more information about OCD?",
		},
	},
	"sexual": {
		{
			Label:    "Safe Sex Practices",
			BotReply: "Good question — protecting yourself and your partner is an important part of a healthy relationship. Would you like more information about safe sex practices?",
		},
		{
			Label:    "STI Awareness",
			BotReply: "It's smart to learn about STIs early; most are preventable and many are curable when caught in time. Would you like more information about STIs?",
		},
		{
			Label:    "Consent",
			BotReply: "Consent is the foundation of every healthy sexual relationship, and understanding it protects everyone involved. Would you like more information about consent?",
		},
		{
			Label:    "Family Planning",
			BotReply: "Planning if and when to have children is a personal choice, and there are more options available than most people know. Would you like more information about family planning?",
		},
	},
	"drugs": {
		{
			Label:    "Alcohol",
			BotReply: "Alcohol is legal, which makes it easy to underestimate — but misuse is one of the most common addictions, and support is everywhere. Would you like more information about alcohol misuse?",
		},
		{
			Label:    "Nicotine",
			BotReply: "Quitting cigarettes or vaping is hard, but millions of people have done it, and your body starts recovering within days. Would you like more information about quitting nicotine?",
		},
		{
			Label:    "Prescription Drugs",
			BotReply: "Dependence on painkillers, sedatives, or stimulants can happen to anyone, even when the prescription started for a good reason. Would you like more information about prescription drug misuse?",
		},
		{
			Label:    "Illegal Drugs",
			BotReply: "No matter what substance is involved, recovery is possible and nobody has to do it alone. Would you like more information about illegal drug use and recovery?",
		},
	},
}

var detailedInfo = map[string]map[string]string{
	"mental": {
		"Anxiety": `Anxiety disorders involve worry or fear that is constant, overwhelming, and out of proportion to the situation. Common signs include restlessness, a racing heart, trouble sleeping or concentrating, and panic attacks.

What helps:
• Slow breathing exercises and grounding techniques during panic
• Regular sleep, exercise, and limits on caffeine
• Cognitive Behavioral Therapy (CBT), which is highly effective for anxiety
• Medication prescribed by a psychiatrist when symptoms are severe

If anxiety lasts for weeks or interferes with daily life, professional support is important.`,
		"Depression": `Depression is more than sadness: it is a persistent low mood with loss of interest in things you used to enjoy, changes in sleep, appetite, or energy, and sometimes feelings of worthlessness.

What helps:
• Talking to someone you trust — isolation makes depression worse
• A consistent daily routine with sleep, meals, and movement
• Talk therapy such as CBT, alone or combined with medication
• Reaching out for professional help early, before symptoms deepen

Depression is treatable. If you ever have thoughts of harming yourself, contact a crisis line immediately.`,
		"PTSD": `Post-traumatic stress disorder can follow any traumatic event. Flashbacks, nightmares, avoidance of reminders, and feeling constantly on guard are common symptoms.

What helps:
• Trauma-focused therapies such as EMDR and trauma-focused CBT
• Grounding techniques for flashbacks: name what you can see, hear, and touch
• Support groups with others who have lived through trauma
• Medication to manage sleep and anxiety symptoms when needed

PTSD is a recognized medical condition, not a weakness, and recovery rates with treatment are good.`,
		"Bipolar Disorder": `Bipolar disorder causes episodes of elevated mood and energy (mania) alternating with episodes of depression. Episodes can last days or weeks and affect sleep, judgment, and relationships.

What helps:
• A mood diary to recognize early warning signs of an episode
• Regular sleep — disrupted sleep is a common episode trigger
• Mood-stabilizing medication managed by a psychiatrist
• Psychoeducation for you and the people close to you

With consistent treatment most people with bipolar disorder live full, stable lives.`,
		"OCD": `Obsessive-compulsive disorder involves intrusive, unwanted thoughts (obsessions) and repetitive behaviors or mental rituals (compulsions) performed to relieve the anxiety they cause.

What helps:
• Exposure and Response Prevention (ERP), the gold-standard therapy for OCD
• Recognizing that intrusive thoughts are symptoms, not intentions
• Medication (commonly SSRIs) when recommended by a psychiatrist
• Patience — recovery is gradual, and setbacks are part of the process`,
	},
	"sexual": {
		"Safe Sex Practices": `Safe sex protects you and your partner from sexually transmitted infections and unintended pregnancy.

Key practices:
• Use barrier protection such as condoms consistently and correctly
• Get tested together before stopping barrier methods
• Keep vaccinations up to date (HPV, hepatitis B)
• Talk openly with partners about history and boundaries

Protection is a shared responsibility, and asking for it is always reasonable.`,
		"STI Awareness": `Sexually transmitted infections are common and often show no symptoms at first. Untreated, some can cause serious long-term harm — but most are preventable, and many are curable.

Key points:
• Regular screening is the only reliable way to know your status
• Many STIs are cured with a simple course of antibiotics
• HIV is manageable with modern treatment; early testing matters
• Telling recent partners after a diagnosis protects them too

Sexual health clinics offer confidential, judgment-free testing.`,
		"Consent": `Consent is a clear, enthusiastic, and ongoing agreement to any sexual activity. It can be withdrawn at any time, and it cannot be given by someone who is underage, unconscious, or impaired.

Key points:
• Silence or the absence of "no" is not consent
• Consent to one activity is not consent to another
• Pressure, guilt, or threats invalidate consent
• Checking in with your partner is normal and respectful

If you have experienced sexual activity without your consent, it was not your fault, and confidential support is available.`,
		"Family Planning": `Family planning lets you decide if and when to have children. There are many contraceptive options with different effectiveness, side effects, and durations.

Common options:
• Barrier methods (condoms) — also protect against STIs
• Short-acting hormonal methods (pill, patch, ring)
• Long-acting reversible contraception (IUD, implant)
• Emergency contraception, most effective as soon as possible

A doctor or family planning clinic can help you choose what fits your health and your plans.`,
	},
	"drugs": {
		"Alcohol": `Alcohol misuse ranges from regular heavy drinking to dependence. Warning signs include drinking more than intended, needing alcohol to relax, memory blackouts, and continuing despite problems at home or work.

What helps:
• Tracking how much you actually drink — the number often surprises people
• Planned alcohol-free days each week to test and rebuild control
• Support groups such as Alcoholics Anonymous
• Medical supervision for withdrawal — stopping suddenly after heavy use can be dangerous

If drinking is affecting your life, a doctor can help you cut down safely.`,
		"Nicotine": `Nicotine, whether from cigarettes or vaping, is one of the most addictive common substances — and also one of the most studied to quit.

What helps:
• Picking a quit date and telling people about it
• Nicotine replacement (patches, gum) roughly doubles success rates
• Identifying triggers — coffee, stress, social situations — and planning around them
• Remembering that cravings pass in minutes, and each one resisted weakens the next

Most people need several attempts. A failed attempt is practice, not failure.`,
		"Prescription Drugs": `Dependence on painkillers, sedatives, or stimulants can develop even when use began with a legitimate prescription. Signs include needing higher doses, running out early, and seeking prescriptions from multiple doctors.

What helps:
• Being honest with your prescribing doctor — they have seen this before
• A supervised tapering plan instead of stopping abruptly
• Counseling to address the pain, anxiety, or pressure behind the use
• Safe disposal of leftover medication at a pharmacy

This is a medical condition with medical solutions, not a moral failing.`,
		"Illegal Drugs": `Addiction to substances such as cannabis, cocaine, heroin, or methamphetamine changes how the brain processes reward, which is why willpower alone is rarely enough.

What helps:
• Rehabilitation programs, residential or outpatient
• Counseling and therapy to address triggers and underlying causes
• Support groups such as Narcotics Anonymous
• Harm-reduction services while working toward recovery

Recovery is possible. One step at a time. Your future is worth fighting for.`,
	},
}

var helplines = map[string]string{
	"mental": `• Suicide & Crisis Lifeline: 988
• NAMI HelpLine: 800-950-6264
• Crisis Support (24/7): (800) 273-8255`,
	"sexual": `• CDC Sexual Health Hotline: 800-232-4636
• National Sexual Assault Hotline: 800-656-4673
• Planned Parenthood: (800) 230-7526`,
	"drugs": `• SAMHSA National Helpline: 800-662-4357
• Suicide & Crisis Lifeline: 988
• Poison Control: (800) 222-1222`,
}

// Categories returns the fixed top-level categories in display order.
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey looks up a category by its stable key.
func CategoryByKey(key string) (models.Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return models.Category{}, false
}

// SubCategoriesFor returns the sub-categories under a category key in display order.
func SubCategoriesFor(key string) ([]models.SubCategory, bool) {
	subs, ok := subCategories[key]
	if !ok {
		return nil, false
	}
	out := make([]models.SubCategory, len(subs))
	copy(out, subs)
	return out, true
}

// SubCategoryByLabel looks up a sub-category by label under a category key.
func SubCategoryByLabel(key, label string) (models.SubCategory, bool) {
	for _, sub := range subCategories[key] {
		if sub.Label == label {
			return sub, true
		}
	}
	return models.SubCategory{}, false
}

// DetailedInfo resolves the long-form body for a (category, sub-category) pair.
func DetailedInfo(categoryKey, subject string) (string, bool) {
	body, ok := detailedInfo[categoryKey][subject]
	return body, ok
}

// Helpline resolves the emergency helpline block for a category key.
func Helpline(categoryKey string) (string, bool) {
	block, ok := helplines[categoryKey]
	return block, ok
}

// Validate checks the totality invariants of the shipped tables: every category
// has sub-categories and a helpline block, and every sub-category has a detail
// body. A failure here is a data-integrity defect in the tables themselves.
func Validate() error {
	if len(categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	for _, c := range categories {
		subs, ok := subCategories[c.Key]
		if !ok || len(subs) == 0 {
			return fmt.Errorf("category %q has no sub-categories", c.Key)
		}
		if _, ok := helplines[c.Key]; !ok {
			return fmt.Errorf("category %q has no helpline block", c.Key)
		}
		for _, sub := range subs {
			if _, ok := detailedInfo[c.Key][sub.Label]; !ok {
				return fmt.Errorf("missing detailed info for %q under category %q", sub.Label, c.Key)
			}
		}
	}
	return nil
}
