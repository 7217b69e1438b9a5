package domain

import "time"

// morning reports whether t falls before noon.
func morning(t time.Time) bool {
	return t.Hour() < 12
}

// DefaultMealContext preselects Fasting in the morning and AfterMeal later.
func DefaultMealContext(t time.Time) MealContext {
	if morning(t) {
		return Fasting
	}
	return AfterMeal
}

// Greeting returns the headline for the entry screen.
func Greeting(t time.Time) string {
	if morning(t) {
		return "Good Morning,\nLet's check fasting glucose level"
	}
	return "Good Afternoon,\nHave you checked your glucose today?"
}

// Reminder returns the advice line under the greeting.
func Reminder(t time.Time) string {
	if morning(t) {
		return "Please remember to check your fasting blood sugar in the morning before eating or drinking anything. It's important for monitoring your health effectively."
	}
	return "Monitoring your glucose levels throughout the day is crucial. Make sure to record your post-meal readings for better tracking."
}
