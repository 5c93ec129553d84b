package common

const RedisKeyXPLeaderboard = "leaderboard:xp"
