package main

import (
    "github.com/mayaaank/MyCanteen-sub000/config"
    "github.com/mayaaank/MyCanteen-sub000/routes"
    "github.com/mayaaank/MyCanteen-sub000/utils"
)

func main() {
    config.InitDB()
    utils.InitMailer()
    r := routes.SetupRouter()
    r.Run(":8080")
}
