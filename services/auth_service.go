package services

import (
    "errors"

    "github.com/mayaaank/MyCanteen-sub000/config"
    "github.com/mayaaank/MyCanteen-sub000/models"
    "github.com/mayaaank/MyCanteen-sub000/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Role:     models.RoleUser,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func FindUserByEmail(email string) (models.User, error) {
    var user models.User
    result := config.DB.Where("email = ?", email).First(&user)
    return user, result.Error
}

func AuthenticateUser(email, password string) (string, error) {
    user, err := FindUserByEmail(email)
    if err != nil {
        return "", errors.New("user not found")
    }

    if !utils.CheckPasswordHash(password, user.Password) {
        return "", errors.New("incorrect password")
    }

    token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
    if err != nil {
        return "", err
    }

    return token, nil
}
