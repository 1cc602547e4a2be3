// Package site holds the brand/content configuration and the parameterized
// page templates. All brand variants render through the same template set;
// a brand is data, not forked source files.
package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// NavLink is one entry in the shared navigation shell.
type NavLink struct {
	Label string `yaml:"label" koanf:"label"`
	Href  string `yaml:"href" koanf:"href"`
}

// Feature is one marketing feature card.
type Feature struct {
	Icon        string `yaml:"icon" koanf:"icon"`
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
}

// Stat is one headline number shown on the home page.
type Stat struct {
	Value string `yaml:"value" koanf:"value"`
	Label string `yaml:"label" koanf:"label"`
}

// Milestone is one entry on the about-page timeline.
type Milestone struct {
	Year        string `yaml:"year" koanf:"year"`
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
}

// Testimonial is one quote shown on the home page.
type Testimonial struct {
	Quote  string `yaml:"quote" koanf:"quote"`
	Author string `yaml:"author" koanf:"author"`
	Role   string `yaml:"role" koanf:"role"`
}

// HelpTopic groups suggested questions on the help page.
type HelpTopic struct {
	Title       string   `yaml:"title" koanf:"title"`
	Description string   `yaml:"description" koanf:"description"`
	Questions   []string `yaml:"questions" koanf:"questions"`
}

// Step is one entry on the how-it-works page.
type Step struct {
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
}

// Brand is the content/config object a page variant is built from.
type Brand struct {
	Key          string        `yaml:"key" koanf:"key"`
	Name         string        `yaml:"name" koanf:"name"`
	Tagline      string        `yaml:"tagline" koanf:"tagline"`
	Description  string        `yaml:"description" koanf:"description"`
	HeroImage    string        `yaml:"hero_image" koanf:"hero_image"`
	AccentColor  string        `yaml:"accent_color" koanf:"accent_color"`
	ContactEmail string        `yaml:"contact_email" koanf:"contact_email"`
	Nav          []NavLink     `yaml:"nav" koanf:"nav"`
	Features     []Feature     `yaml:"features" koanf:"features"`
	Stats        []Stat        `yaml:"stats" koanf:"stats"`
	Steps        []Step        `yaml:"steps" koanf:"steps"`
	Milestones   []Milestone   `yaml:"milestones" koanf:"milestones"`
	Testimonials []Testimonial `yaml:"testimonials" koanf:"testimonials"`
	HelpTopics   []HelpTopic   `yaml:"help_topics" koanf:"help_topics"`
}

// PresetBrand returns a built-in brand variant by key.
func PresetBrand(key string) (*Brand, bool) {
	switch key {
	case "shikshamitra", "education":
		return EducationBrand(), true
	case "maa", "maternal":
		return MaternalCareBrand(), true
	}
	return nil, false
}

// LoadBrand reads a brand file, then overlays SITE_* environment
// variables (SITE_NAME -> name, etc.). A preset key ("shikshamitra",
// "maa") selects the matching built-in variant instead of a file; an
// empty path selects the education preset.
func LoadBrand(path string) (*Brand, error) {
	k := koanf.New(".")

	brand := EducationBrand()

	if preset, ok := PresetBrand(path); ok {
		brand = preset
	} else if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("accessing brand file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading brand file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("SITE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SITE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading brand env overrides: %w", err)
	}

	if err := k.Unmarshal("", brand); err != nil {
		return nil, fmt.Errorf("unmarshalling brand config: %w", err)
	}

	if err := brand.Validate(); err != nil {
		return nil, err
	}
	return brand, nil
}

// Validate checks the minimum a brand needs to render.
func (b *Brand) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("brand name is required")
	}
	if len(b.Nav) == 0 {
		return fmt.Errorf("brand nav cannot be empty")
	}
	return nil
}

// Save writes the brand to a YAML file, e.g. to seed a new variant.
func (b *Brand) Save(path string) error {
	data, err := yamlv3.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshalling brand config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing brand config to %s: %w", path, err)
	}
	return nil
}

func defaultNav() []NavLink {
	return []NavLink{
		{Label: "Home", Href: "/"},
		{Label: "Features", Href: "/features"},
		{Label: "About", Href: "/about"},
		{Label: "How It Works", Href: "/how-it-works"},
		{Label: "Contact", Href: "/contact"},
		{Label: "Need Help?", Href: "/help"},
	}
}

// EducationBrand is the built-in education-platform variant.
func EducationBrand() *Brand {
	return &Brand{
		Key:          "shikshamitra",
		Name:         "ShikshaMitra",
		Tagline:      "Learning that meets every student where they are",
		Description:  "An education platform connecting students, teachers, and parents with personalized learning paths and progress tracking.",
		HeroImage:    "/images/hero-education.jpg",
		AccentColor:  "#4f46e5",
		ContactEmail: "hello@shikshamitra.example",
		Nav:          defaultNav(),
		Features: []Feature{
			{Icon: "light-bulb", Title: "Personalized Learning", Description: "Adaptive lesson plans tuned to each student's pace and strengths."},
			{Icon: "chart-bar", Title: "Progress Tracking", Description: "Real-time dashboards for students, parents, and teachers."},
			{Icon: "chat-bubble", Title: "Doubt Support", Description: "Ask questions any time and get guided, step-by-step answers."},
			{Icon: "sparkles", Title: "Smart Revision", Description: "Spaced practice schedules built from each student's weak areas."},
		},
		Stats: []Stat{
			{Value: "50K+", Label: "Active students"},
			{Value: "1,200+", Label: "Partner schools"},
			{Value: "94%", Label: "Improved outcomes"},
		},
		Steps: []Step{
			{Title: "Create an account", Description: "Sign up with your email or school code in under a minute."},
			{Title: "Pick your subjects", Description: "Choose the syllabus and subjects that match your classes."},
			{Title: "Learn and practice", Description: "Work through lessons and exercises tailored to you."},
			{Title: "Track your growth", Description: "Watch your dashboard fill in as concepts click."},
		},
		Milestones: []Milestone{
			{Year: "2021", Title: "Founded", Description: "Started as a weekend tutoring collective."},
			{Year: "2023", Title: "1,000 schools", Description: "Crossed a thousand partner schools nationwide."},
			{Year: "2025", Title: "AI study help", Description: "Launched the always-on study assistant."},
		},
		Testimonials: []Testimonial{
			{Quote: "My daughter finally enjoys maths homework.", Author: "Priya S.", Role: "Parent"},
			{Quote: "The progress reports save me hours every week.", Author: "Arun M.", Role: "Teacher"},
		},
		HelpTopics: []HelpTopic{
			{
				Title:       "Getting Started",
				Description: "Learn how to set up your account and navigate the platform",
				Questions:   []string{"How do I create an account?", "What are the system requirements?", "How do I reset my password?"},
			},
			{
				Title:       "Learning Features",
				Description: "Explore the learning tools available to you",
				Questions:   []string{"How do personalized paths work?", "Can I change my syllabus?", "Where do I find practice tests?"},
			},
			{
				Title:       "Troubleshooting",
				Description: "Solutions to common problems and issues",
				Questions:   []string{"Why can't I log in?", "The app isn't loading, what should I do?", "How do I report a bug?"},
			},
			{
				Title:       "Account & Billing",
				Description: "Manage your subscription and payment methods",
				Questions:   []string{"How do I upgrade my plan?", "Where can I download my invoices?", "How do I cancel?"},
			},
		},
	}
}

// MaternalCareBrand is the built-in maternal-healthcare variant.
func MaternalCareBrand() *Brand {
	return &Brand{
		Key:          "maa",
		Name:         "MAA",
		Tagline:      "Care for every mother, every step of the way",
		Description:  "A maternal-healthcare platform supporting expecting mothers with monitoring, care plans, and round-the-clock guidance.",
		HeroImage:    "/images/hero-maternal.jpg",
		AccentColor:  "#db2777",
		ContactEmail: "care@maa.example",
		Nav:          defaultNav(),
		Features: []Feature{
			{Icon: "heart", Title: "Health Monitoring", Description: "Track vitals, symptoms, and appointments in one place."},
			{Icon: "calendar", Title: "Care Plans", Description: "Week-by-week guidance reviewed by maternal health specialists."},
			{Icon: "chat-bubble", Title: "24/7 Guidance", Description: "Questions answered any hour, with escalation to your care team."},
			{Icon: "shield", Title: "Medical Integrations", Description: "Share records securely with your hospital and clinic."},
		},
		Stats: []Stat{
			{Value: "30K+", Label: "Mothers supported"},
			{Value: "400+", Label: "Partner clinics"},
			{Value: "98%", Label: "Would recommend"},
		},
		Steps: []Step{
			{Title: "Create an account", Description: "Sign up and tell us your due date."},
			{Title: "Build your care plan", Description: "Answer a few questions to personalize your plan."},
			{Title: "Track and check in", Description: "Log how you're feeling and keep appointments on schedule."},
			{Title: "Reach out any time", Description: "Message the care team whenever something feels off."},
		},
		Milestones: []Milestone{
			{Year: "2022", Title: "Founded", Description: "Launched with three partner clinics."},
			{Year: "2024", Title: "Nationwide", Description: "Expanded coverage to every state."},
			{Year: "2025", Title: "Care assistant", Description: "Introduced the always-available care assistant."},
		},
		Testimonials: []Testimonial{
			{Quote: "I never felt alone in my third trimester.", Author: "Meera K.", Role: "Mother of two"},
			{Quote: "Fewer missed appointments, better outcomes.", Author: "Dr. Rao", Role: "Obstetrician"},
		},
		HelpTopics: []HelpTopic{
			{
				Title:       "Getting Started",
				Description: "Learn how to set up your account and navigate the platform",
				Questions:   []string{"How do I create an account?", "What are the system requirements?", "How do I reset my password?"},
			},
			{
				Title:       "Healthcare Features",
				Description: "Explore all the powerful healthcare features available to you",
				Questions:   []string{"How does the health monitoring work?", "Can I customize my care plan?", "What medical integrations are available?"},
			},
			{
				Title:       "Troubleshooting",
				Description: "Solutions to common problems and issues",
				Questions:   []string{"Why can't I log in?", "The app isn't loading, what should I do?", "How do I report a bug?"},
			},
			{
				Title:       "Account & Billing",
				Description: "Manage your subscription and payment methods",
				Questions:   []string{"How do I upgrade my plan?", "Where can I download my invoices?", "How do I cancel?"},
			},
		},
	}
}
