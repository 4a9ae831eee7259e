// Package notify renders auction events and bid outcomes into Telegram
// messages and delivers them.
package notify
