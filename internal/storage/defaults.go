package storage

const defaultYAML = `# EyeCare Reminder settings
settings:
  # Minutes between reminders, 1..1440.
  interval_minutes: 20
  # random, sequential or single.
  message_mode: random
  # auto, ru or en.
  lang: auto

messages:
  ru:
    default: Встань, моргни и глянь вдаль. Глаза скажут спасибо.
    items:
      - Посмотри вдаль и моргни пару раз.
      - Потянись, дай глазам отдохнуть.
      - Переведи взгляд на что-то дальнее.
  en:
    default: Stand up, blink, and look into the distance. Your eyes will thank you.
    items:
      - Look away from the screen for 20 seconds.
      - Stretch a bit and rest your eyes.
      - Blink a few times and refocus.
`

const defaultTOML = `# EyeCare Reminder settings
[settings]
# Minutes between reminders, 1..1440.
interval_minutes = 20
# random, sequential or single.
message_mode = "random"
# auto, ru or en.
lang = "auto"

[messages.ru]
default = "Встань, моргни и глянь вдаль. Глаза скажут спасибо."
items = [
  "Посмотри вдаль и моргни пару раз.",
  "Потянись, дай глазам отдохнуть.",
  "Переведи взгляд на что-то дальнее.",
]

[messages.en]
default = "Stand up, blink, and look into the distance. Your eyes will thank you."
items = [
  "Look away from the screen for 20 seconds.",
  "Stretch a bit and rest your eyes.",
  "Blink a few times and refocus.",
]
`
