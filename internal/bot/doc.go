// Package bot wires the Telegram command surface to the monitor, the bid
// orchestrator, and the session store. One Bot serves every chat; all
// per-chat state lives in the session store and the monitor manager.
package bot
